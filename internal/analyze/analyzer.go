/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// Package analyze turns fetched activity into report prose via an LLM.
package analyze

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// Analyzer generates one completion from a system instruction and a prompt.
type Analyzer interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// New picks the backend: Vertex AI when a Cloud project is configured,
// otherwise the OpenAI-compatible fallback.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Analyzer, error) {
	if cfg.GoogleCloudProject != "" {
		return NewGemini(ctx, cfg, log)
	}
	if cfg.OpenAIKey != "" {
		return NewOpenAI(cfg, log), nil
	}
	return nil, errors.New("analyze: no LLM backend configured, set GOOGLE_CLOUD_PROJECT or OPENAI_API_KEY")
}
