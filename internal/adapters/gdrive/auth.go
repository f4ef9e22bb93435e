/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// Authorize runs the interactive OAuth consent flow and writes the token
// cache where NewClient expects it. The operator opens the printed URL in a
// browser and pastes the authorization code back. An existing token is kept
// unless force is set.
func Authorize(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, force bool) error {
	if _, err := os.Stat(cfg.DriveTokenFile); err == nil && !force {
		fmt.Fprintf(out, "token already exists at %s, pass --force to regenerate\n", cfg.DriveTokenFile)
		return nil
	}

	conf, err := loadOAuthConfig(cfg)
	if err != nil { return err }
	if conf.RedirectURL == "" { conf.RedirectURL = "urn:ietf:wg:oauth:2.0:oob" }

	url := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Open this link in your browser and approve read-only Drive access:\n\n%s\n\nAuthorization code: ", url)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}
	tok, err := conf.Exchange(ctx, code)
	if err != nil { return fmt.Errorf("exchange authorization code: %w", err) }

	if err := writeToken(cfg.DriveTokenFile, tok); err != nil { return err }
	fmt.Fprintf(out, "token saved to %s\n", cfg.DriveTokenFile)
	return nil
}

// writeToken persists the token cache with owner-only permissions, creating
// the config directory on first run.
func writeToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil { return fmt.Errorf("encode token: %w", err) }
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token %s: %w", path, err)
	}
	return nil
}
