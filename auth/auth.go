// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// AccountParam is the query parameter every endpoint reads the account from
const AccountParam = "account"

var ErrAccountNotAllowed = errors.New("account not allowed")

// AllowList is the immutable set of accounts the API serves
type AllowList struct {
	accounts []string
}

// NewAllowList copies accounts, dropping blanks and duplicates
func NewAllowList(accounts []string) AllowList {
	list := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a == "" || slices.Contains(list, a) {
			continue
		}
		list = append(list, a)
	}
	return AllowList{accounts: list}
}

// Allows reports exact membership; there is no case folding or pattern matching
func (l AllowList) Allows(account string) bool {
	return slices.Contains(l.accounts, account)
}

// Accounts returns a copy of the configured accounts in configuration order
func (l AllowList) Accounts() []string {
	return slices.Clone(l.accounts)
}

func (l AllowList) String() string {
	return strings.Join(l.accounts, ",")
}

// ValidateAccount checks the account against the allow-list
func (l AllowList) ValidateAccount(account string) error {
	if !l.Allows(account) {
		return ErrAccountNotAllowed
	}
	return nil
}

// AccountFromRequest returns the allow-listed account of the request.
// Missing and unknown accounts both yield ErrAccountNotAllowed.
func (l AllowList) AccountFromRequest(r *http.Request) (string, error) {
	account := r.URL.Query().Get(AccountParam)
	if err := l.ValidateAccount(account); err != nil {
		return "", err
	}
	return account, nil
}
