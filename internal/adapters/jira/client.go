/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// searchPageMax is the per-request cap of the /search/jql endpoint.
const searchPageMax = 5000

// searchTotalMax bounds how many issues a single analysis will pull.
const searchTotalMax = 10000

type Client struct {
	baseURL string
	email   string
	token   string
	project string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.JiraURL, "/"),
		email:   cfg.JiraEmail,
		token:   cfg.JiraToken,
		project: cfg.JiraProject,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

// Project returns the configured project key, empty when unset.
func (c *Client) Project() string { return c.project }

func (c *Client) apiURL(path string, q url.Values) string {
	if !strings.HasPrefix(path, "/") { path = "/" + path }
	u := c.baseURL + "/rest/api/3" + path
	if len(q) > 0 { u = u + "?" + q.Encode() }
	return u
}

func (c *Client) doJSON(ctx context.Context, method, u string, body any) (map[string]any, error) {
	if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil { return nil, err }
		payload = b
	}
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var r io.Reader
		if payload != nil { r = strings.NewReader(string(payload)) }
		req, err := http.NewRequestWithContext(ctx, method, u, r)
		if err != nil { return nil, err }
		if payload != nil { req.Header.Set("Content-Type", "application/json") }
		req.SetBasicAuth(c.email, c.token)
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			out, retry, rerr := readJSON(resp)
			if rerr == nil { return out, nil }
			if !retry { return nil, rerr }
			lastErr = rerr
		}
		// backoff
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return nil, lastErr
}

// readJSON drains one response; retry is true only for 429/5xx.
func readJSON(resp *http.Response) (out map[string]any, retry bool, err error) {
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
		return nil, resp.StatusCode == 429 || resp.StatusCode >= 500, err
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, false, err }
	return out, false, nil
}

// SearchKeys runs a JQL query through the paginated /search/jql endpoint and
// returns matching issue keys, newest first per the query's ORDER BY.
func (c *Client) SearchKeys(ctx context.Context, jql string) ([]string, error) {
	if jql == "" { return nil, errors.New("jira: empty jql") }
	u := c.apiURL("/search/jql", nil)
	body := map[string]any{
		"jql":        jql,
		"fields":     []string{"id", "self", "key"},
		"maxResults": searchPageMax,
	}
	var keys []string
	for {
		page, err := c.doJSON(ctx, http.MethodPost, u, body)
		if err != nil { return nil, err }
		if msgs, ok := page["errorMessages"].([]any); ok && len(msgs) > 0 {
			parts := make([]string, 0, len(msgs))
			for _, m := range msgs {
				if s, _ := m.(string); s != "" { parts = append(parts, s) }
			}
			return nil, fmt.Errorf("jira search: %s", strings.Join(parts, "; "))
		}
		issues, _ := page["issues"].([]any)
		for _, i0 := range issues {
			if m, _ := i0.(map[string]any); m != nil {
				if k, _ := m["key"].(string); k != "" { keys = append(keys, k) }
			}
		}
		isLast, _ := page["isLast"].(bool)
		next, _ := page["nextPageToken"].(string)
		if isLast || next == "" || len(keys) >= searchTotalMax { break }
		body["nextPageToken"] = next
	}
	if len(keys) > searchTotalMax { keys = keys[:searchTotalMax] }
	return keys, nil
}

// Issue fetches one issue with full fields.
func (c *Client) Issue(ctx context.Context, key string) (map[string]any, error) {
	if key == "" { return nil, errors.New("jira: empty issue key") }
	return c.doJSON(ctx, http.MethodGet, c.apiURL("/issue/"+url.PathEscape(key), nil), nil)
}

// Worklogs fetches the worklog entries of one issue.
func (c *Client) Worklogs(ctx context.Context, key string) (map[string]any, error) {
	if key == "" { return nil, errors.New("jira: empty issue key") }
	return c.doJSON(ctx, http.MethodGet, c.apiURL("/issue/"+url.PathEscape(key)+"/worklog", nil), nil)
}

// BuildJQL scopes an issue search to the project, the assignee, and issues
// created or updated inside the window. The project filter is what keeps the
// query bounded on large instances.
func BuildJQL(project, assignee, start, end string) string {
	dates := fmt.Sprintf(`((updated >= "%s" AND updated <= "%s") OR (created >= "%s" AND created <= "%s"))`,
		start, end, start, end)
	return fmt.Sprintf(`project = %s AND assignee = "%s" AND %s ORDER BY updated DESC`, project, assignee, dates)
}
