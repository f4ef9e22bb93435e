/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/charleseiq/eiq-manager-tools/internal/adapters/gdrive"
	"github.com/charleseiq/eiq-manager-tools/internal/adapters/github"
	"github.com/charleseiq/eiq-manager-tools/internal/adapters/jira"
	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/pipeline"
)

func newGitHubCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github [name] [period]",
		Short: "Analyze GitHub PR review activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, targets, period, err := setup(ctx, o, args, true)
			if err != nil { return err }
			fetcher, err := github.NewClient(ctx, env.Cfg, env.Log)
			if err != nil { return err }
			return runTargets(ctx, env, o, targets, func(ctx context.Context, u domain.User) error {
				return pipeline.RunGitHub(ctx, env, fetcher, u, period)
			})
		},
	}
	addCommonFlags(cmd, o)
	cmd.Flags().StringVar(&o.githubToken, "token", "", "GitHub token (overrides GITHUB_TOKEN)")
	return cmd
}

func newJiraCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira [name] [period]",
		Short: "Analyze JIRA sprint and epic delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, targets, period, err := setup(ctx, o, args, true)
			if err != nil { return err }
			if env.Cfg.JiraURL == "" {
				return errors.New("jira: base URL required, set JIRA_URL")
			}
			if env.Cfg.JiraToken == "" || env.Cfg.JiraEmail == "" {
				return errors.New("jira: credentials required, set JIRA_TOKEN and EVOLUTIONIQ_EMAIL")
			}
			fetcher := jira.NewClient(env.Cfg, env.Log)
			return runTargets(ctx, env, o, targets, func(ctx context.Context, u domain.User) error {
				return pipeline.RunJira(ctx, env, fetcher, u, period)
			})
		},
	}
	addCommonFlags(cmd, o)
	f := cmd.Flags()
	f.StringVar(&o.jiraURL, "jira-url", "", "JIRA base URL (overrides JIRA_URL)")
	f.StringVar(&o.jiraToken, "jira-token", "", "JIRA API token (overrides JIRA_TOKEN)")
	f.StringVar(&o.jiraProject, "jira-project", "", "JIRA project key (overrides JIRA_PROJECT)")
	f.StringVar(&o.jiraEmail, "jira-email", "", "JIRA account email (overrides EVOLUTIONIQ_EMAIL)")
	return cmd
}

func newGDocsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdocs [name] [period]",
		Short: "Analyze authored Google Docs design documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, targets, period, err := setup(ctx, o, args, true)
			if err != nil { return err }
			fetcher, err := gdrive.NewClient(ctx, env.Cfg, env.Log)
			if err != nil { return err }
			return runTargets(ctx, env, o, targets, func(ctx context.Context, u domain.User) error {
				return pipeline.RunGDocs(ctx, env, fetcher, u, period)
			})
		},
	}
	addCommonFlags(cmd, o)
	cmd.Flags().StringVar(&o.tokenFile, "token-file", "", "Drive OAuth token cache (overrides DRIVE_TOKEN_FILE)")
	return cmd
}

func newAuthCmd(o *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the Google Drive OAuth consent flow and cache the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil { return err }
			o.applyCredOverrides(&cfg)
			return gdrive.Authorize(cmd.Context(), &cfg, cmd.InOrStdin(), cmd.OutOrStdout(), force)
		},
	}
	cmd.Flags().StringVar(&o.tokenFile, "token-file", "", "Drive OAuth token cache (overrides DRIVE_TOKEN_FILE)")
	cmd.Flags().BoolVar(&force, "force", false, "regenerate an existing token")
	return cmd
}

func newNotesCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes [name] [period]",
		Short: "Analyze free-form observation notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, targets, period, err := setup(ctx, o, args, true)
			if err != nil { return err }
			return runTargets(ctx, env, o, targets, func(ctx context.Context, u domain.User) error {
				return pipeline.RunNotes(ctx, env, u, period)
			})
		},
	}
	addCommonFlags(cmd, o)
	return cmd
}

func newCalibrateCmd(o *options) *cobra.Command {
	var toolName string
	cmd := &cobra.Command{
		Use:   "calibrate [period]",
		Short: "Normalize report scores across users at the same level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Calibration always covers every user with a report.
			o.all = true
			if len(args) > 0 && o.period == "" { o.period = args[0] }
			env, _, period, err := setup(ctx, o, nil, true)
			if err != nil { return err }

			tools := []domain.Tool{domain.ToolGitHub, domain.ToolJira, domain.ToolGDocs, domain.ToolNotes}
			if toolName != "" {
				tool, err := toolByName(toolName)
				if err != nil { return err }
				tools = []domain.Tool{tool}
			}
			for _, tool := range tools {
				if err := pipeline.RunCalibrate(ctx, env, tool, period); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.period, "period", "p", "", "period token, e.g. 2025H2")
	f.StringVarP(&o.start, "start", "s", "", "explicit start date (YYYY-MM-DD)")
	f.StringVarP(&o.end, "end", "e", "", "explicit end date (YYYY-MM-DD)")
	f.StringVarP(&o.output, "output", "o", "", "reports directory (default \"reports\")")
	f.StringVarP(&toolName, "tool", "t", "", "calibrate one report kind only (github, jira, gdocs, notes)")
	cmd.Args = cobra.MaximumNArgs(1)
	return cmd
}

func newPackageCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package [name] [period]",
		Short: "Assemble the final review package from reports and notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, targets, period, err := setup(ctx, o, args, false)
			if err != nil { return err }
			return runTargets(ctx, env, o, targets, func(ctx context.Context, u domain.User) error {
				return pipeline.RunPackage(ctx, env, u, period)
			})
		},
	}
	addCommonFlags(cmd, o)
	return cmd
}
