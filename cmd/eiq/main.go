/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// eiq renders markdown performance-review reports from GitHub, JIRA,
// Google Docs and free-form notes activity, then calibrates and packages
// them per user and period.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
