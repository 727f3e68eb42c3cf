package storage

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"link_librarian/internal/model"
)

// ErrCredentialNotFound means no install record exists for the tenant.
var ErrCredentialNotFound = errors.New("no credential record for tenant")

// CredentialStore defines the interface for tenant credential operations.
// Save overwrites any existing record for the team; there is no merge.
type CredentialStore interface {
	Find(ctx context.Context, teamID string) (*model.TenantCredential, error)
	Save(ctx context.Context, cred *model.TenantCredential) error
}

// S3CredentialStore implements CredentialStore using AWS S3
type S3CredentialStore struct {
	client     *s3.Client
	bucketName string
	encryptKey []byte // 32-byte key for AES-256
}

type credentialData struct {
	Record string `json:"record"`
}

// NewS3CredentialStore creates a new S3CredentialStore instance
func NewS3CredentialStore(client *s3.Client, bucketName string, encryptKey []byte) *S3CredentialStore {
	return &S3CredentialStore{
		client:     client,
		bucketName: bucketName,
		encryptKey: encryptKey,
	}
}

// Find retrieves and decrypts the credential record for the given team ID
func (s *S3CredentialStore) Find(ctx context.Context, teamID string) (*model.TenantCredential, error) {
	key := s.getKey(teamID)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential from S3: %v", err)
	}
	defer result.Body.Close()

	var data credentialData
	if err := json.NewDecoder(result.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode credential data: %v", err)
	}

	// Decrypt the record
	plaintext, err := s.decrypt(data.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credential: %v", err)
	}

	var cred model.TenantCredential
	if err := json.Unmarshal([]byte(plaintext), &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %v", err)
	}

	return &cred, nil
}

// Save encrypts and stores the credential record, replacing any previous
// record for the same team
func (s *S3CredentialStore) Save(ctx context.Context, cred *model.TenantCredential) error {
	key := s.getKey(cred.TeamID)

	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %v", err)
	}

	// Encrypt the record
	encrypted, err := s.encrypt(string(plaintext))
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %v", err)
	}

	data := credentialData{Record: encrypted}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal credential data: %v", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to store credential in S3: %v", err)
	}

	return nil
}

// encrypt encrypts the record using AES-GCM
func (s *S3CredentialStore) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// Generate a random nonce
	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Encrypt the data
	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)

	// Encode the result in base64
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts the record using AES-GCM
func (s *S3CredentialStore) decrypt(encryptedText string) (string, error) {
	// Decode the base64 string
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(ciphertext) < aesGCM.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}

	// Split nonce and ciphertext
	nonce := ciphertext[:aesGCM.NonceSize()]
	ciphertext = ciphertext[aesGCM.NonceSize():]

	// Decrypt the data
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// getKey generates the S3 key for a team's credential record
func (s *S3CredentialStore) getKey(teamID string) string {
	return fmt.Sprintf("credentials/%s.json", teamID)
}
