/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// Package gdrive lists and exports the user's Google Docs through the Drive
// API, authenticating with a cached OAuth token.
package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

type Client struct {
	svc *drive.Service
	log zerolog.Logger
}

// NewClient builds a Drive client from the cached OAuth token. Interactive
// consent does not happen here: when the token is missing the error points at
// the eiq auth command, which runs the consent flow and writes the cache.
func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	tok, conf, err := loadToken(cfg)
	if err != nil { return nil, err }
	svc, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, tok)))
	if err != nil { return nil, fmt.Errorf("drive service: %w", err) }
	return &Client{svc: svc, log: log}, nil
}

// loadOAuthConfig reads the OAuth client definition kept next to the token
// cache. Both the auth flow and the Drive client parse it the same way.
func loadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	credFile := filepath.Join(filepath.Dir(cfg.DriveTokenFile), "credentials.json")
	credBytes, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("drive credentials not found at %s, download an OAuth client from the Cloud console: %w", credFile, err)
	}
	conf, err := google.ConfigFromJSON(credBytes, drive.DriveReadonlyScope)
	if err != nil { return nil, fmt.Errorf("parse drive credentials: %w", err) }
	return conf, nil
}

func loadToken(cfg *config.Config) (*oauth2.Token, *oauth2.Config, error) {
	conf, err := loadOAuthConfig(cfg)
	if err != nil { return nil, nil, err }

	tokBytes, err := os.ReadFile(cfg.DriveTokenFile)
	if err != nil {
		return nil, nil, fmt.Errorf("drive token not found at %s, run \"eiq auth\" first: %w", cfg.DriveTokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokBytes, &tok); err != nil {
		return nil, nil, fmt.Errorf("drive token at %s is not valid JSON: %w", cfg.DriveTokenFile, err)
	}
	return &tok, conf, nil
}

// ListOwnedDocs returns the user's own Google Docs created inside the window,
// most recently modified first. Ownership cannot be expressed in the Drive
// query language, so it is filtered client-side by owner email.
func (c *Client) ListOwnedDocs(ctx context.Context, ownerEmail string, period domain.Period) ([]domain.Document, error) {
	const q = "mimeType='application/vnd.google-apps.document' and trashed=false"
	var docs []domain.Document
	pageToken := ""
	for {
		call := c.svc.Files.List().Context(ctx).Q(q).
			Fields("nextPageToken, files(id, name, createdTime, modifiedTime, webViewLink, owners(emailAddress, displayName))").
			OrderBy("modifiedTime desc").
			PageSize(1000)
		if pageToken != "" { call = call.PageToken(pageToken) }
		page, err := call.Do()
		if err != nil { return nil, fmt.Errorf("list drive files: %w", err) }

		for _, f := range page.Files {
			created, err := time.Parse(time.RFC3339, f.CreatedTime)
			if err != nil || !createdInWindow(created, period) { continue }
			if ownerEmail != "" && !ownedBy(f, ownerEmail) { continue }
			doc := domain.Document{ID: f.Id, Title: f.Name, WebLink: f.WebViewLink}
			if m, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil { doc.ModifiedAt = m }
			docs = append(docs, doc)
		}
		pageToken = page.NextPageToken
		if pageToken == "" { break }
	}
	return docs, nil
}

// ExportMarkdown exports one document's body, preferring the native markdown
// export and falling back to plain text.
func (c *Client) ExportMarkdown(ctx context.Context, docID string) (string, error) {
	for _, mime := range []string{"text/markdown", "text/plain"} {
		resp, err := c.svc.Files.Export(docID, mime).Context(ctx).Download()
		if err != nil {
			c.log.Debug().Str("doc", docID).Str("mime", mime).Err(err).Msg("export failed")
			continue
		}
		body, rerr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if rerr != nil { return "", fmt.Errorf("read export of %s: %w", docID, rerr) }
		return string(body), nil
	}
	return "", fmt.Errorf("export doc %s: no supported export format", docID)
}

// FetchComments pulls the review discussion on one document.
func (c *Client) FetchComments(ctx context.Context, docID string) ([]domain.DocComment, error) {
	var out []domain.DocComment
	pageToken := ""
	for {
		call := c.svc.Comments.List(docID).Context(ctx).
			Fields("nextPageToken, comments(author(displayName), content, resolved, createdTime, replies(id))").
			PageSize(100)
		if pageToken != "" { call = call.PageToken(pageToken) }
		page, err := call.Do()
		if err != nil { return nil, fmt.Errorf("list comments for %s: %w", docID, err) }
		for _, cm := range page.Comments {
			dc := domain.DocComment{Body: cm.Content, Resolved: cm.Resolved, Replies: len(cm.Replies)}
			if cm.Author != nil { dc.Author = cm.Author.DisplayName }
			if t, err := time.Parse(time.RFC3339, cm.CreatedTime); err == nil { dc.CreatedAt = t }
			out = append(out, dc)
		}
		pageToken = page.NextPageToken
		if pageToken == "" { break }
	}
	return out, nil
}

func createdInWindow(t time.Time, period domain.Period) bool {
	if t.Before(period.Start) { return false }
	return t.Before(period.End.AddDate(0, 0, 1))
}

func ownedBy(f *drive.File, email string) bool {
	for _, o := range f.Owners {
		if strings.EqualFold(o.EmailAddress, email) { return true }
	}
	return false
}

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SafeFileName makes a document title usable as an artifact file name.
func SafeFileName(title string) string {
	return unsafeFileChars.ReplaceAllString(title, "_")
}
