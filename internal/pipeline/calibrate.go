/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// RunCalibrate normalizes one tool's rendered reports across users for a
// period. Reports are grouped by configured level; each group of two or more
// is sent to the analyzer with a comparison prompt, and only the sections the
// model flags are patched in place. Running it again over already-calibrated
// reports yields no further changes. A structural failure (an adjustment
// naming a heading the report no longer has) aborts before any document in
// that group is written.
func RunCalibrate(ctx context.Context, env Env, tool domain.Tool, period domain.Period) error {
	peers := make([]report.PeerReport, 0, len(env.Cfg.Users))
	for _, u := range env.Cfg.Users {
		path := report.Path(env.Cfg.ReportsDir, resolve.Slug(u), period.Key, tool)
		if !env.Out.Exists(path) { continue }
		data, err := env.Out.ReadFile(path)
		if err != nil { return fmt.Errorf("reading %s: %w", path, err) }
		peers = append(peers, report.PeerReport{Slug: resolve.Slug(u), Level: u.Level, Doc: string(data)})
	}
	if len(peers) == 0 {
		return fmt.Errorf("no %s reports found for period %s, run the analysis first", tool, period.Key)
	}

	groups := report.GroupByLevel(peers)
	levels := make([]string, 0, len(groups))
	for lvl := range groups { levels = append(levels, lvl) }
	sort.Strings(levels)

	for _, lvl := range levels {
		group := groups[lvl]
		if len(group) < 2 {
			env.Log.Info().Str("level", lvl).Msg("single report at level, nothing to calibrate against")
			continue
		}
		if err := calibrateGroup(ctx, env, tool, period, lvl, group); err != nil {
			return fmt.Errorf("level %s: %w", lvl, err)
		}
	}
	return nil
}

func calibrateGroup(ctx context.Context, env Env, tool domain.Tool, period domain.Period, level string, group []report.PeerReport) error {
	inputs := make([]peerInput, len(group))
	docs := make(map[string]string, len(group))
	for i, p := range group {
		inputs[i] = peerInput{Slug: p.Slug, Doc: p.Doc}
		docs[p.Slug] = p.Doc
	}

	raw, err := env.LLM.Generate(ctx, calibrateSystem, buildCalibrationPrompt(level, inputs))
	if err != nil { return err }

	adjs, err := report.ParseAdjustments(raw)
	if err != nil { return err }
	if len(adjs) == 0 {
		env.Log.Info().Str("level", level).Int("reports", len(group)).Msg("group already calibrated")
		return nil
	}

	changed, err := report.ApplyAdjustments(docs, adjs)
	if err != nil { return err }

	for _, p := range group {
		doc, ok := changed[p.Slug]
		if !ok { continue }
		path := report.Path(env.Cfg.ReportsDir, p.Slug, period.Key, tool)
		if err := report.Write(env.Out, path, doc); err != nil { return err }
		fmt.Println(path)
		env.Log.Info().Str("user", p.Slug).Str("level", level).Msg("report recalibrated")
	}
	return nil
}
