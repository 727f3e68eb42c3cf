package main

import (
	"context"
	"fmt"

	"link_librarian/internal/config"
	"link_librarian/internal/handler"
	"link_librarian/internal/logger"
	"link_librarian/internal/search"
	"link_librarian/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
)

// newEngine wires the credential store and search index into a gin
// engine with all routes registered. Kept in step with cmd/server.
func newEngine(cfg *config.Config) (*gin.Engine, error) {
	credentials, err := newCredentialStore(cfg)
	if err != nil {
		return nil, err
	}

	index, err := newSearchIndex(cfg)
	if err != nil {
		return nil, err
	}

	h := handler.NewSlackHandler(cfg, credentials, index)

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogMiddleware())
	h.RegisterRoutes(r)

	return r, nil
}

func newCredentialStore(cfg *config.Config) (storage.CredentialStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return storage.NewS3CredentialStore(client, cfg.CredentialBucketName, []byte(cfg.CredentialEncryptKey)), nil
}

func newSearchIndex(cfg *config.Config) (search.Index, error) {
	switch cfg.SearchBackend {
	case config.SearchBackendSQLite:
		return search.NewSQLiteIndex(cfg.SearchDBPath)
	default:
		return search.NewAlgoliaIndex(cfg.AlgoliaAppID, cfg.AlgoliaAPIKey), nil
	}
}
