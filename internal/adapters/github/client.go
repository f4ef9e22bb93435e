/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// Package github fetches pull-request review activity through the GitHub
// search and pulls APIs.
package github

import (
	"context"
	"errors"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// The search API stops at 1000 results, ten pages of 100.
const maxPages = 10

// Detail-fetch caps keep a busy half-year under the API rate budget.
const (
	maxReviewedPRs = 50
	maxAuthoredPRs = 30
)

type Client struct {
	gh  *gh.Client
	org string
	log zerolog.Logger
}

func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	if cfg.GitHubToken == "" { return nil, errors.New("github: token required, set GITHUB_TOKEN") }
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	return &Client{
		gh:  gh.NewClient(oauth2.NewClient(ctx, ts)),
		org: cfg.Organization,
		log: log,
	}, nil
}

// prRef locates one PR found by search.
type prRef struct {
	Owner   string
	Repo    string
	Number  int
	HTMLURL string
}

// parsePRRef extracts owner/repo/number from a PR's HTML URL
// (https://github.com/<owner>/<repo>/pull/<n>).
func parsePRRef(htmlURL string) (prRef, bool) {
	parts := strings.Split(htmlURL, "/")
	if len(parts) < 7 { return prRef{}, false }
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n <= 0 { return prRef{}, false }
	return prRef{Owner: parts[3], Repo: parts[4], Number: n, HTMLURL: htmlURL}, true
}

// searchPRs pages through issue search, keeping only pull requests. A 422
// means the search window is exhausted, not a failure.
func (c *Client) searchPRs(ctx context.Context, query string) ([]prRef, error) {
	opts := &gh.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: 100, Page: 1},
	}
	var refs []prRef
	for opts.Page <= maxPages {
		result, resp, err := c.gh.Search.Issues(ctx, query, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == 422 { break }
			return nil, err
		}
		for _, item := range result.Issues {
			if !item.IsPullRequest() { continue }
			if ref, ok := parsePRRef(item.GetHTMLURL()); ok { refs = append(refs, ref) }
		}
		if len(result.Issues) < 100 { break }
		opts.Page++
	}
	return refs, nil
}
