/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/rs/zerolog"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
)

// OpenAI is the fallback analyzer for environments without Vertex access.
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewOpenAI(cfg *config.Config, log zerolog.Logger) *OpenAI {
	return &OpenAI{
		client:  openai.NewClient(option.WithAPIKey(cfg.OpenAIKey)),
		model:   cfg.OpenAIModel,
		timeout: cfg.LLMTimeout,
		log:     log,
	}
}

func (o *OpenAI) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{}
	if system != "" { messages = append(messages, openai.SystemMessage(system)) }
	messages = append(messages, openai.UserMessage(prompt))

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(o.model),
		Messages:    messages,
		Temperature: openai.Float(analysisTemperature),
	})
	if err != nil { return "", fmt.Errorf("openai generate: %w", err) }
	if len(resp.Choices) == 0 { return "", errors.New("openai generate: no choices") }
	o.log.Debug().Dur("took", time.Since(start)).Msg("openai completion")
	return resp.Choices[0].Message.Content, nil
}
