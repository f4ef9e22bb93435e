/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charleseiq/eiq-manager-tools/internal/analyze"
	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/logger"
	"github.com/charleseiq/eiq-manager-tools/internal/pipeline"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// options holds the flag values shared by every subcommand. The first two
// positional arguments are accepted as name and period for compatibility
// with older scripts; explicit flags win when both are given.
type options struct {
	configPath string
	name       string
	username   string
	period     string
	start      string
	end        string
	output     string
	all        bool

	// Per-tool credential overrides; environment variables remain the
	// default source.
	githubToken string
	jiraURL     string
	jiraToken   string
	jiraProject string
	jiraEmail   string
	tokenFile   string
}

// applyCredOverrides lets explicit credential flags beat the environment for
// one invocation, without touching the shared config file.
func (o *options) applyCredOverrides(cfg *config.Config) {
	if o.githubToken != "" { cfg.GitHubToken = o.githubToken }
	if o.jiraURL != "" { cfg.JiraURL = strings.TrimRight(o.jiraURL, "/") }
	if o.jiraToken != "" { cfg.JiraToken = o.jiraToken }
	if o.jiraProject != "" { cfg.JiraProject = o.jiraProject }
	if o.jiraEmail != "" { cfg.JiraEmail = o.jiraEmail }
	if o.tokenFile != "" { cfg.DriveTokenFile = o.tokenFile }
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "eiq",
		Short:         "Performance-review analysis tools",
		Long:          "eiq fetches engineering activity (GitHub reviews, JIRA sprints, Google Docs, notes),\nscores it with an LLM and renders markdown review reports per user and period.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.json", "path to shared config.json")

	root.AddCommand(
		newGitHubCmd(opts),
		newJiraCmd(opts),
		newGDocsCmd(opts),
		newNotesCmd(opts),
		newCalibrateCmd(opts),
		newPackageCmd(opts),
		newAuthCmd(opts),
	)
	return root
}

func addCommonFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.StringVarP(&o.name, "name", "n", "", "user display name from config.json")
	f.StringVarP(&o.username, "username", "u", "", "platform username from config.json")
	f.StringVarP(&o.period, "period", "p", "", "period token, e.g. 2025H2 or 2025Q3")
	f.StringVarP(&o.start, "start", "s", "", "explicit start date (YYYY-MM-DD), exclusive with --period")
	f.StringVarP(&o.end, "end", "e", "", "explicit end date (YYYY-MM-DD), exclusive with --period")
	f.BoolVarP(&o.all, "all", "a", false, "run for every configured user")
	f.StringVarP(&o.output, "output", "o", "", "reports directory (default \"reports\")")
	cmd.Args = cobra.MaximumNArgs(2)
}

// applyPositionals maps legacy positional arguments onto unset flags.
func (o *options) applyPositionals(args []string) {
	if len(args) > 0 && o.name == "" && o.username == "" { o.name = args[0] }
	if len(args) > 1 && o.period == "" && o.start == "" && o.end == "" { o.period = args[1] }
}

// setup loads configuration, resolves the period and the target users, and
// builds the pipeline environment. Configuration problems surface here,
// before any network call.
func setup(ctx context.Context, o *options, args []string, needLLM bool) (pipeline.Env, []domain.User, domain.Period, error) {
	o.applyPositionals(args)

	cfg, err := config.Load(o.configPath)
	if err != nil { return pipeline.Env{}, nil, domain.Period{}, err }
	if o.output != "" { cfg.ReportsDir = o.output }
	o.applyCredOverrides(&cfg)

	log := logger.New(cfg)

	period, err := resolve.TimeRange(o.period, o.start, o.end)
	if err != nil { return pipeline.Env{}, nil, domain.Period{}, err }

	var targets []domain.User
	if o.all {
		if len(cfg.Users) == 0 {
			return pipeline.Env{}, nil, domain.Period{}, errors.New("--all given but config.json has no users")
		}
		targets = cfg.Users
	} else {
		ident := o.name
		if ident == "" { ident = o.username }
		if ident == "" {
			return pipeline.Env{}, nil, domain.Period{}, errors.New("specify a user with -n/--name or -u/--username, or pass -a/--all")
		}
		u, err := resolve.User(cfg.Users, ident)
		if err != nil { return pipeline.Env{}, nil, domain.Period{}, err }
		targets = []domain.User{u}
	}

	env := pipeline.Env{Cfg: &cfg, Log: log, Out: report.FSWriter{}}
	if needLLM {
		llm, err := analyze.New(ctx, &cfg, log)
		if err != nil { return pipeline.Env{}, nil, domain.Period{}, err }
		env.LLM = llm
	}
	return env, targets, period, nil
}

// runTargets executes one per-user pipeline for the resolved targets. In
// batch mode failures are collected so the remaining users still run; the
// returned error keeps the exit code non-zero on a partial failure.
func runTargets(ctx context.Context, env pipeline.Env, o *options, targets []domain.User, fn func(ctx context.Context, u domain.User) error) error {
	if o.all {
		return pipeline.ForUsers(ctx, env, fn)
	}
	return fn(ctx, targets[0])
}

// toolByName maps the calibrate --tool argument to a report kind.
func toolByName(name string) (domain.Tool, error) {
	switch name {
	case "github", "github-review":
		return domain.ToolGitHub, nil
	case "jira":
		return domain.ToolJira, nil
	case "gdocs":
		return domain.ToolGDocs, nil
	case "notes":
		return domain.ToolNotes, nil
	}
	return "", fmt.Errorf("unknown tool %q (expected github, jira, gdocs or notes)", name)
}
