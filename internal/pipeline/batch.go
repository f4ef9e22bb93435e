/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// BatchError reports which users failed in an --all run. Successful users'
// reports are already on disk by the time it is returned.
type BatchError struct {
	Failures []UserFailure
}

type UserFailure struct {
	Slug string
	Err  error
}

func (e *BatchError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Slug, f.Err)
	}
	return fmt.Sprintf("%d user(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// ForUsers runs fn for every configured user in config-file order. One
// user's failure does not stop the others; failures are collected and
// returned together so the exit code reflects a partial run. Cancellation
// stops the batch between users.
func ForUsers(ctx context.Context, env Env, fn func(ctx context.Context, user domain.User) error) error {
	var batch BatchError
	for _, u := range env.Cfg.Users {
		if err := ctx.Err(); err != nil { return err }
		slug := resolve.Slug(u)
		color.New(color.Bold).Fprintf(color.Error, "== %s ==\n", u.Name)
		if err := fn(ctx, u); err != nil {
			env.Log.Error().Err(err).Str("user", slug).Msg("user run failed, continuing batch")
			batch.Failures = append(batch.Failures, UserFailure{Slug: slug, Err: err})
			continue
		}
	}
	if len(batch.Failures) > 0 {
		return &batch
	}
	return nil
}
