/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Activity is the user's PR footprint for one window: PRs they reviewed
// (with only their own reviews and comments attached) and PRs they authored.
type Activity struct {
	Reviewed []domain.PullRequest
	Authored []domain.PullRequest
}

// FetchActivity searches the org for the user's reviewed and authored PRs
// and pulls details for each, within the caps. The reviewed search is not
// date-scoped: review submission dates, not PR dates, decide membership, so
// filtering happens after the detail fetch. Individual PR failures are
// logged and skipped.
func (c *Client) FetchActivity(ctx context.Context, username string, period domain.Period) (*Activity, error) {
	if username == "" { return nil, fmt.Errorf("github: empty username") }

	reviewedQ := fmt.Sprintf("org:%s reviewed-by:%s type:pr", c.org, username)
	reviewed, err := c.searchPRs(ctx, reviewedQ)
	if err != nil { return nil, fmt.Errorf("search reviewed PRs: %w", err) }

	authoredQ := fmt.Sprintf("org:%s author:%s type:pr created:%s..%s",
		c.org, username, period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
	authored, err := c.searchPRs(ctx, authoredQ)
	if err != nil { return nil, fmt.Errorf("search authored PRs: %w", err) }
	c.log.Info().Int("reviewed", len(reviewed)).Int("authored", len(authored)).Msg("github search done")

	act := &Activity{}
	for _, ref := range capRefs(reviewed, maxReviewedPRs) {
		pr, err := c.reviewedPR(ctx, ref, username, period)
		if err != nil {
			c.log.Warn().Str("pr", ref.HTMLURL).Err(err).Msg("skip reviewed PR")
			continue
		}
		// Keep only PRs the user actually touched inside the window.
		if pr != nil { act.Reviewed = append(act.Reviewed, *pr) }
	}
	for _, ref := range capRefs(authored, maxAuthoredPRs) {
		pr, err := c.authoredPR(ctx, ref, period)
		if err != nil {
			c.log.Warn().Str("pr", ref.HTMLURL).Err(err).Msg("skip authored PR")
			continue
		}
		if pr != nil { act.Authored = append(act.Authored, *pr) }
	}
	return act, nil
}

func (c *Client) reviewedPR(ctx context.Context, ref prRef, username string, period domain.Period) (*domain.PullRequest, error) {
	details, _, err := c.gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil { return nil, err }
	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, ref.Owner, ref.Repo, ref.Number, &gh.ListOptions{PerPage: 100})
	if err != nil { return nil, err }
	comments, _, err := c.gh.PullRequests.ListComments(ctx, ref.Owner, ref.Repo, ref.Number,
		&gh.PullRequestListCommentsOptions{ListOptions: gh.ListOptions{PerPage: 100}})
	if err != nil { return nil, err }

	mine, mineComments := filterByUser(reviews, comments, username, period)
	if len(mine) == 0 && len(mineComments) == 0 { return nil, nil }

	pr := fromDetails(ref, details)
	pr.Reviews = mine
	pr.Comments = mineComments
	return &pr, nil
}

func (c *Client) authoredPR(ctx context.Context, ref prRef, period domain.Period) (*domain.PullRequest, error) {
	details, _, err := c.gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil { return nil, err }
	created := details.GetCreatedAt().Time
	if !inWindow(created, period) { return nil, nil }
	pr := fromDetails(ref, details)
	return &pr, nil
}

func fromDetails(ref prRef, details *gh.PullRequest) domain.PullRequest {
	pr := domain.PullRequest{
		Number:       ref.Number,
		Repo:         ref.Repo,
		Owner:        ref.Owner,
		Title:        details.GetTitle(),
		Body:         details.GetBody(),
		Author:       details.GetUser().GetLogin(),
		State:        details.GetState(),
		CreatedAt:    details.GetCreatedAt().Time,
		Additions:    details.GetAdditions(),
		Deletions:    details.GetDeletions(),
		ChangedFiles: details.GetChangedFiles(),
		HTMLURL:      ref.HTMLURL,
	}
	if m := details.MergedAt; m != nil { pr.MergedAt = &m.Time }
	return pr
}

// filterByUser keeps the named user's reviews and comments submitted inside
// the window, dropping everyone else's.
func filterByUser(reviews []*gh.PullRequestReview, comments []*gh.PullRequestComment, username string, period domain.Period) ([]domain.Review, []domain.ReviewComment) {
	var rs []domain.Review
	for _, r := range reviews {
		if r.GetUser().GetLogin() != username { continue }
		at := r.GetSubmittedAt().Time
		if at.IsZero() || !inWindow(at, period) { continue }
		rs = append(rs, domain.Review{State: r.GetState(), Body: r.GetBody(), SubmittedAt: at})
	}
	var cs []domain.ReviewComment
	for _, cm := range comments {
		if cm.GetUser().GetLogin() != username { continue }
		at := cm.GetCreatedAt().Time
		if at.IsZero() || !inWindow(at, period) { continue }
		cs = append(cs, domain.ReviewComment{Body: cm.GetBody(), CreatedAt: at})
	}
	return rs, cs
}

// inWindow treats the period as inclusive calendar dates: anything before
// midnight after the end date counts.
func inWindow(t time.Time, period domain.Period) bool {
	if t.Before(period.Start) { return false }
	return t.Before(period.End.AddDate(0, 0, 1))
}

func capRefs(refs []prRef, n int) []prRef {
	if len(refs) > n { return refs[:n] }
	return refs
}
