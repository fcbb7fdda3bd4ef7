// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package steem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/magic-frog/models"
)

const DefaultBaseURL = "https://api.steemit.com"

// PageSize is the largest page the discussion queries accept
const PageSize = 100

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUpstreamStatus  = errors.New("unexpected upstream status")
)

// RPCError is the error member of a JSON-RPC response
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client talks to a Steem condenser API node over JSON-RPC 2.0
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	nextID atomic.Int64
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// call performs one JSON-RPC request and decodes its result into out
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: %d", method, ErrUpstreamStatus, resp.StatusCode)
	}

	var res rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if res.Error != nil {
		return fmt.Errorf("%s: %w", method, res.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}

// GetAllPosts returns every root post authored by account, oldest first
func (c *Client) GetAllPosts(ctx context.Context, account string) ([]models.Post, error) {
	beforeDate := time.Now().UTC().Format(models.SteemTimeLayout)
	startPermlink := ""
	seen := make(map[string]bool)

	var posts []models.Post
	for {
		var page []models.Post
		err := c.call(ctx, "condenser_api.get_discussions_by_author_before_date",
			[]interface{}{account, startPermlink, beforeDate, PageSize}, &page)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, p := range page {
			// Continuation pages start with the previous page's last post
			if seen[p.Permlink] {
				continue
			}
			seen[p.Permlink] = true
			added++
			if p.Author == account && p.ParentAuthor == "" {
				posts = append(posts, p)
			}
		}

		if len(page) < PageSize || added == 0 {
			break
		}
		startPermlink = page[len(page)-1].Permlink
	}

	// Upstream pages are newest first
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return posts, nil
}

// GetReplies returns the direct replies to a post in upstream order
func (c *Client) GetReplies(ctx context.Context, author, permlink string) ([]models.Comment, error) {
	var replies []models.Comment
	err := c.call(ctx, "condenser_api.get_content_replies", []interface{}{author, permlink}, &replies)
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// GetAccount returns the upstream account record untouched
func (c *Client) GetAccount(ctx context.Context, account string) (json.RawMessage, error) {
	var accounts []json.RawMessage
	err := c.call(ctx, "condenser_api.get_accounts", []interface{}{[]string{account}}, &accounts)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%s: %w", account, ErrAccountNotFound)
	}
	return accounts[0], nil
}
