package search

import (
	"context"

	"link_librarian/internal/model"
)

// HitsPerPage is the fixed page size for search responses.
const HitsPerPage = 5

// Index is the tenant-scoped full-text search collaborator. Each team id maps
// to its own index namespace. Upsert is keyed by the document link: writing
// the same link twice leaves one document with the second write's fields.
type Index interface {
	Upsert(ctx context.Context, teamID string, doc model.IndexedDocument) error
	Search(ctx context.Context, teamID, query string, page int) (*model.SearchResultPage, error)
}
