// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/magic-frog/cliparse"
	"github.com/danielhkuo/magic-frog/models"
)

// TestAPIKey is the delegator API key the fake delegator server accepts
const TestAPIKey = "test-delegators-key"

// TestAccount is an allow-listed account in GetTestConfig
const TestAccount = "the-magic-frog"

// baseTime is the creation time of the first post built by MakePosts
var baseTime = time.Date(2018, 3, 1, 12, 0, 0, 0, time.UTC)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3333,
		DelegatorsAPIKey: TestAPIKey,
		DelegatorsURL:    cliparse.DefaultDelegatorsURL,
		SteemURL:         cliparse.DefaultSteemURL,
		Accounts:         append([]string(nil), cliparse.DefaultAccounts...),
		StoryTag:         cliparse.DefaultStoryTag,
		StoryTitlePrefix: cliparse.DefaultStoryTitlePrefix,
		FetchConcurrency: 4,
	}
}

// MakePost builds a post the way it arrives from upstream, Raw included
func MakePost(author, permlink, title string, created time.Time, tags ...string) models.Post {
	if tags == nil {
		tags = []string{}
	}
	meta, _ := json.Marshal(map[string]interface{}{"tags": tags})
	raw, _ := json.Marshal(map[string]interface{}{
		"author":        author,
		"permlink":      permlink,
		"title":         title,
		"body":          "body of " + permlink,
		"created":       created.UTC().Format(models.SteemTimeLayout),
		"parent_author": "",
		"json_metadata": string(meta),
	})

	var p models.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		panic(err)
	}
	return p
}

// MakeStoryPosts builds one post per entry of starts, an hour apart, oldest
// first. A true entry carries the story tag.
func MakeStoryPosts(author string, starts ...bool) []models.Post {
	posts := make([]models.Post, 0, len(starts))
	for i, start := range starts {
		permlink := fmt.Sprintf("post-%d", i+1)
		created := baseTime.Add(time.Duration(i) * time.Hour)
		if start {
			posts = append(posts, MakePost(author, permlink, "Chapter", created, cliparse.DefaultStoryTag))
		} else {
			posts = append(posts, MakePost(author, permlink, "Chapter", created, "frog"))
		}
	}
	return posts
}

// MakeComment builds a reply
func MakeComment(author, permlink, body string) models.Comment {
	return models.Comment{
		Author:   author,
		Permlink: permlink,
		Body:     body,
		Created:  baseTime.Format(models.SteemTimeLayout),
	}
}

// MakeDelegator decodes a raw upstream delegator record, so it is served back verbatim
func MakeDelegator(raw string) models.Delegator {
	var d models.Delegator
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		panic(fmt.Sprintf("bad delegator fixture %q: %v", raw, err))
	}
	return d
}

// FakeSteem is an in-memory condenser API
type FakeSteem struct {
	mu sync.Mutex

	// Posts per author, oldest first
	Posts map[string][]models.Post
	// Replies keyed by "author/permlink"
	Replies  map[string][]models.Comment
	Accounts map[string]json.RawMessage
	// FailMethod makes the named method answer with an RPC error
	FailMethod string

	Calls map[string]int
}

func NewFakeSteem() *FakeSteem {
	return &FakeSteem{
		Posts:    make(map[string][]models.Post),
		Replies:  make(map[string][]models.Comment),
		Accounts: make(map[string]json.RawMessage),
		Calls:    make(map[string]int),
	}
}

// AddReplies attaches replies to a post
func (f *FakeSteem) AddReplies(author, permlink string, replies ...models.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := author + "/" + permlink
	f.Replies[key] = append(f.Replies[key], replies...)
}

// CallCount returns how often method was called
func (f *FakeSteem) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

type rpcRequest struct {
	ID     int64             `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (f *FakeSteem) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[req.Method]++

	w.Header().Set("Content-Type", "application/json")
	if req.Method == f.FailMethod {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32000, "message": "node unavailable"},
		})
		return
	}

	var result interface{}
	switch req.Method {
	case "condenser_api.get_discussions_by_author_before_date":
		var author, start string
		var limit int
		json.Unmarshal(req.Params[0], &author)
		json.Unmarshal(req.Params[1], &start)
		json.Unmarshal(req.Params[3], &limit)
		result = f.page(author, start, limit)
	case "condenser_api.get_content_replies":
		var author, permlink string
		json.Unmarshal(req.Params[0], &author)
		json.Unmarshal(req.Params[1], &permlink)
		replies := f.Replies[author+"/"+permlink]
		if replies == nil {
			replies = []models.Comment{}
		}
		result = replies
	case "condenser_api.get_accounts":
		var names []string
		json.Unmarshal(req.Params[0], &names)
		accounts := []json.RawMessage{}
		for _, name := range names {
			if acc, ok := f.Accounts[name]; ok {
				accounts = append(accounts, acc)
			}
		}
		result = accounts
	default:
		result = nil
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
	})
}

// page mimics the upstream paging: newest first, starting at start inclusive
func (f *FakeSteem) page(author, start string, limit int) []json.RawMessage {
	posts := f.Posts[author]
	newestFirst := make([]models.Post, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, posts[i])
	}

	from := 0
	if start != "" {
		from = len(newestFirst)
		for i, p := range newestFirst {
			if p.Permlink == start {
				from = i
				break
			}
		}
	}

	out := []json.RawMessage{}
	for i := from; i < len(newestFirst) && len(out) < limit; i++ {
		raw, _ := json.Marshal(newestFirst[i])
		out = append(out, raw)
	}
	return out
}

// NewSteemServer serves fake over HTTP for the lifetime of the test
func NewSteemServer(t *testing.T, fake *FakeSteem) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return srv
}

// NewDelegatorServer serves delegators per account, checking the API key
func NewDelegatorServer(t *testing.T, delegators map[string][]models.Delegator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hash") != TestAPIKey {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		list, ok := delegators[r.URL.Query().Get("id")]
		if !ok {
			list = []models.Delegator{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
