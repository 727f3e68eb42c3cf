package model

// IndexedDocument is what gets upserted into a tenant's search index.
// Identity is the link: re-indexing the same URL overwrites the previous
// document rather than appending a duplicate.
type IndexedDocument struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`
	TS    string `json:"ts"`
}

// SearchHit is the slice of a document the responder renders.
type SearchHit struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

// SearchResultPage is one page of hits. Page is zero-indexed internally;
// NbPages is the total page count.
type SearchResultPage struct {
	Hits    []SearchHit `json:"hits"`
	Page    int         `json:"page"`
	NbPages int         `json:"nbPages"`
}
