package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
)

type fakeDocs struct {
	docs      []domain.Document
	exportErr error
}

func (f *fakeDocs) ListOwnedDocs(context.Context, string, domain.Period) ([]domain.Document, error) {
	return f.docs, nil
}

func (f *fakeDocs) ExportMarkdown(_ context.Context, docID string) (string, error) {
	if f.exportErr != nil { return "", f.exportErr }
	return "# Exported " + docID, nil
}

func (f *fakeDocs) FetchComments(context.Context, string) ([]domain.DocComment, error) {
	return []domain.DocComment{{Author: "Reviewer", Body: "Consider backpressure", Resolved: true}}, nil
}

func TestRunGDocsWritesArtifacts(t *testing.T) {
	user := domain.User{Username: "a", Name: "Ann A", Email: "ann@example.com"}
	llm := &fakeLLM{reply: cannedAnalysis}
	env, out := testEnv(t, llm, user)

	docs := &fakeDocs{docs: []domain.Document{{
		ID:         "doc1",
		Title:      "Design: Cache/Invalidation",
		WebLink:    "https://docs.google.com/d/doc1",
		ModifiedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}}}

	err := RunGDocs(context.Background(), env, docs, user, testPeriod())
	require.NoError(t, err)

	artifact := filepath.Join(report.ArtifactsDir("reports", "ann-a", "2025H2"), "Design_ Cache_Invalidation.md")
	require.True(t, out.Exists(artifact), "exported doc must land under artifacts/")
	assert.Equal(t, "# Exported doc1", string(out.files[artifact]))

	doc := string(out.files[report.Path("reports", "ann-a", "2025H2", domain.ToolGDocs)])
	assert.Contains(t, doc, "## Documents Reviewed")
	assert.Contains(t, doc, "[Design: Cache/Invalidation](https://docs.google.com/d/doc1)")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Consider backpressure")
}

func TestRunGDocsExportFailureSkipsDocument(t *testing.T) {
	user := domain.User{Username: "a", Name: "Ann A", Email: "ann@example.com"}
	llm := &fakeLLM{reply: cannedAnalysis}
	env, out := testEnv(t, llm, user)

	docs := &fakeDocs{
		docs:      []domain.Document{{ID: "doc1", Title: "Broken"}},
		exportErr: assert.AnError,
	}

	err := RunGDocs(context.Background(), env, docs, user, testPeriod())
	require.NoError(t, err, "one unexportable document must not fail the run")
	assert.True(t, out.Exists(report.Path("reports", "ann-a", "2025H2", domain.ToolGDocs)))
}
