/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import "time"

// User is one entry in the shared config.json user list. Records are
// read-only at analysis time; operators edit the file by hand.
type User struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Level         string `json:"level,omitempty"`
	JiraAccountID string `json:"jira_account_id,omitempty"`
}

// Period is a resolved calendar window. Key is the short token
// (e.g. "2025H2"); Start/End are inclusive calendar dates.
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
}

// Tool identifies one analysis kind; it is the file-name prefix of the
// rendered report under reports/<slug>/<period>/.
type Tool string

const (
	ToolGitHub Tool = "github-review"
	ToolJira   Tool = "jira"
	ToolGDocs  Tool = "gdocs"
	ToolNotes  Tool = "notes"
)

// PullRequest is one PR touched by the user in the window, either as a
// reviewer or as an author.
type PullRequest struct {
	Number       int
	Repo         string
	Owner        string
	Title        string
	Body         string
	Author       string
	State        string
	CreatedAt    time.Time
	MergedAt     *time.Time
	Additions    int
	Deletions    int
	ChangedFiles int
	HTMLURL      string
	Reviews      []Review
	Comments     []ReviewComment
}

type Review struct {
	State       string
	Body        string
	SubmittedAt time.Time
}

type ReviewComment struct {
	Body      string
	CreatedAt time.Time
}

// Issue is a JIRA issue assigned to the user within the window.
type Issue struct {
	Key         string
	Summary     string
	Description string
	Type        string
	Status      string
	Priority    string
	EpicKey     string
	SprintIDs   []int64
	StoryPoints float64
	TimeSpent   int
	TimeEstim   int
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	ResolvedAt  *time.Time
}

type Sprint struct {
	ID    int64
	Name  string
	State string
	Start *time.Time
	End   *time.Time
}

type Worklog struct {
	IssueKey  string
	Author    string
	StartedAt time.Time
	Seconds   int
}

type Epic struct {
	Key  string
	Name string
}

// SprintMetrics is computed locally from the user's issues in one sprint.
type SprintMetrics struct {
	Sprint          Sprint
	TotalIssues     int
	CompletedIssues int
	CompletionRate  float64
	Velocity        float64            // completed story points
	EpicAllocation  map[string]float64 // epic key -> percent of sprint points
	Accomplishments []Issue            // completed issues
}

// Document is a Google Doc owned by the user and modified in the window.
type Document struct {
	ID         string
	Title      string
	ModifiedAt time.Time
	WebLink    string
	Markdown   string
	Comments   []DocComment
}

type DocComment struct {
	Author    string
	Body      string
	Resolved  bool
	CreatedAt time.Time
	Replies   int
}
