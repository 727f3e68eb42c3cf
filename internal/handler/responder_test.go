package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link_librarian/internal/model"
)

func TestRespondNoHits(t *testing.T) {
	idx := &fakeIndex{result: &model.SearchResultPage{Page: 0, NbPages: 0}}
	h, _, _ := newTestHandler(idx)

	reply := h.Respond(context.Background(), "T123", "rust ownership", 0)

	assert.Equal(t, `I am sorry to say that I found no hits for "rust ownership"`, reply.Text)
	assert.False(t, reply.UnfurlLinks)
	assert.False(t, reply.UnfurlMedia)
	require.Len(t, reply.Attachments, 1)
	assert.Equal(t, searchFooter, reply.Attachments[0].Footer)
}

func TestRespondRendersHits(t *testing.T) {
	idx := &fakeIndex{result: &model.SearchResultPage{
		Hits: []model.SearchHit{
			{Link: "http://one.example.com", Title: " First "},
			{Link: "http://two.example.com", Title: "Second"},
		},
		Page:    0,
		NbPages: 1,
	}}
	h, _, _ := newTestHandler(idx)

	reply := h.Respond(context.Background(), "T123", "examples", 0)

	assert.Equal(t, hitsHeader+
		"\n  • <http://one.example.com|First>"+
		"\n  • <http://two.example.com|Second>", reply.Text)
	// single page: no buttons attachment, footer only
	require.Len(t, reply.Attachments, 1)
	assert.Equal(t, searchFooter, reply.Attachments[0].Footer)
}

func TestRespondPaginationButtons(t *testing.T) {
	hits := []model.SearchHit{{Link: "http://example.com", Title: "x"}}

	tests := []struct {
		name       string
		page       int
		nbPages    int
		wantNames  []string
		wantValues []string
	}{
		{name: "first of three", page: 0, nbPages: 3, wantNames: []string{"next"}, wantValues: []string{"1"}},
		{name: "middle of three", page: 1, nbPages: 3, wantNames: []string{"prev", "next"}, wantValues: []string{"0", "2"}},
		{name: "last of three", page: 2, nbPages: 3, wantNames: []string{"prev"}, wantValues: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &fakeIndex{result: &model.SearchResultPage{Hits: hits, Page: tt.page, NbPages: tt.nbPages}}
			h, _, _ := newTestHandler(idx)

			reply := h.Respond(context.Background(), "T123", "q", tt.page)

			require.Len(t, reply.Attachments, 2)
			buttonsAtt := reply.Attachments[0]
			assert.Equal(t, "q", buttonsAtt.CallbackID)
			assert.Equal(t, buttonsFallback, buttonsAtt.Fallback)

			var names, values []string
			for _, a := range buttonsAtt.Actions {
				names = append(names, a.Name)
				values = append(values, a.Value)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}

func TestRespondCaptionIsOneIndexed(t *testing.T) {
	idx := &fakeIndex{result: &model.SearchResultPage{
		Hits:    []model.SearchHit{{Link: "http://example.com", Title: "x"}},
		Page:    1,
		NbPages: 3,
	}}
	h, _, _ := newTestHandler(idx)

	reply := h.Respond(context.Background(), "T123", "q", 1)
	require.Len(t, reply.Attachments, 2)
	assert.Equal(t, "Page 2 of 3", reply.Attachments[0].Text)
}

func TestRespondCallbackIDRoundTrip(t *testing.T) {
	// the callback id must carry the query byte for byte so the click
	// handler reruns the exact same search
	query := `tricky "query" with % and ü`
	idx := &fakeIndex{result: &model.SearchResultPage{
		Hits:    []model.SearchHit{{Link: "http://example.com", Title: "x"}},
		Page:    0,
		NbPages: 2,
	}}
	h, _, _ := newTestHandler(idx)

	reply := h.Respond(context.Background(), "T123", query, 0)
	require.Len(t, reply.Attachments, 2)
	assert.Equal(t, query, reply.Attachments[0].CallbackID)
}

func TestRespondSearchErrorRendersApology(t *testing.T) {
	idx := &fakeIndex{searchErr: errors.New("index offline")}
	h, _, _ := newTestHandler(idx)

	reply := h.Respond(context.Background(), "T123", "q", 0)
	assert.Contains(t, reply.Text, `no hits for "q"`)
}

func TestRespondQueriesTenantIndex(t *testing.T) {
	idx := &fakeIndex{}
	h, _, _ := newTestHandler(idx)

	h.Respond(context.Background(), "T999", "rust", 2)

	require.Len(t, idx.queries, 1)
	assert.Equal(t, searchCall{teamID: "T999", query: "rust", page: 2}, idx.queries[0])
}
