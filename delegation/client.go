// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package delegation

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/danielhkuo/magic-frog/models"
)

const DefaultBaseURL = "https://uploadbeta.com/api/steemit/delegators/"

var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Client fetches the delegators of an account from the delegator API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// GetDelegators returns the delegators of account, largest SP first.
// Delegators with equal SP keep the upstream order.
func (c *Client) GetDelegators(ctx context.Context, account string) ([]models.Delegator, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse delegator url: %w", err)
	}
	// The API expects a bare "cached" flag, which url.Values cannot express
	q := url.Values{}
	q.Set("hash", c.APIKey)
	q.Set("id", account)
	u.RawQuery = "cached&" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch delegators: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch delegators: %w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var delegators []models.Delegator
	if err := json.NewDecoder(resp.Body).Decode(&delegators); err != nil {
		return nil, fmt.Errorf("decode delegators: %w", err)
	}

	SortBySP(delegators)
	return delegators, nil
}

// SortBySP orders delegators by SP descending, stable for ties
func SortBySP(delegators []models.Delegator) {
	slices.SortStableFunc(delegators, func(a, b models.Delegator) int {
		return cmp.Compare(b.SP, a.SP)
	})
}
