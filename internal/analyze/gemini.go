/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// analysisTemperature keeps scoring consistent across peers in a batch.
const analysisTemperature = 0.3

// Gemini is the primary analyzer, talking to Vertex AI.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewGemini(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.GoogleCloudProject,
		Location: cfg.GoogleCloudLocation,
	})
	if err != nil { return nil, fmt.Errorf("vertex client: %w", err) }
	return &Gemini{client: client, model: cfg.GeminiModel, timeout: cfg.LLMTimeout, log: log}, nil
}

func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](analysisTemperature),
	}
	if system != "" { cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser) }

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil { return "", fmt.Errorf("vertex generate: %w", err) }
	out := resp.Text()
	if strings.TrimSpace(out) == "" { return "", errors.New("vertex generate: empty response") }
	g.log.Debug().Dur("took", time.Since(start)).Int("chars", len(out)).Msg("gemini completion")
	return out, nil
}
