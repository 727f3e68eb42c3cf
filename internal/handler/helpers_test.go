package handler

import (
	"context"
	"net/url"
	"sync"

	"github.com/slack-go/slack"

	"link_librarian/internal/model"
	"link_librarian/internal/storage"
	"link_librarian/internal/webpage"
)

const testVerificationToken = "vtok"

type upsertCall struct {
	teamID string
	doc    model.IndexedDocument
}

type searchCall struct {
	teamID string
	query  string
	page   int
}

type fakeIndex struct {
	mu        sync.Mutex
	upserts   []upsertCall
	upsertErr error
	queries   []searchCall
	result    *model.SearchResultPage
	searchErr error
}

func (f *fakeIndex) Upsert(ctx context.Context, teamID string, doc model.IndexedDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, upsertCall{teamID: teamID, doc: doc})
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, teamID, query string, page int) (*model.SearchResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, searchCall{teamID: teamID, query: query, page: page})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &model.SearchResultPage{Page: page}, nil
}

type postCall struct {
	channel string
	values  url.Values
}

type reactionCall struct {
	name string
	item slack.ItemRef
}

type fakeChat struct {
	mu        sync.Mutex
	posts     []postCall
	reactions []reactionCall
	postErr   error
	reactErr  error
}

func (f *fakeChat) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return "", "", f.postErr
	}
	_, values, err := slack.UnsafeApplyMsgOptions("token", channelID, slack.APIURL, options...)
	if err != nil {
		return "", "", err
	}
	f.posts = append(f.posts, postCall{channel: channelID, values: values})
	return channelID, "1.0", nil
}

func (f *fakeChat) AddReaction(name string, item slack.ItemRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reactErr != nil {
		return f.reactErr
	}
	f.reactions = append(f.reactions, reactionCall{name: name, item: item})
	return nil
}

// newTestHandler builds a SlackHandler on fakes. The returned chat fake is
// shared by every tenant the handler touches.
func newTestHandler(idx *fakeIndex) (*SlackHandler, *fakeChat, *storage.MemoryCredentialStore) {
	chat := &fakeChat{}
	creds := storage.NewMemoryCredentialStore()
	h := &SlackHandler{
		clientID:          "client-id",
		clientSecret:      "client-secret",
		redirectURI:       "https://bot.example.com/finish_auth",
		verificationToken: testVerificationToken,
		credentials:       creds,
		index:             idx,
		fetcher:           webpage.NewFetcher(),
		newChatAPI:        func(string) ChatAPI { return chat },
	}
	return h, chat, creds
}

func testCredential() *model.TenantCredential {
	return &model.TenantCredential{
		TeamID:          "T123",
		UserAccessToken: "xoxp-user",
		BotUserID:       "UBOT",
		BotAccessToken:  "xoxb-bot",
	}
}
