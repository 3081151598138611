package reviewstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-constructs/docmigrate/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndQueryRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rep := report.New("rename")
	rep.FilesProcessed = 12
	rep.FilesChanged = 4
	rep.RestrictedFiles = 2
	rep.Protections = 31
	rep.AddReview("docs/community.mdx", 8, "see discuss.hashicorp.com", "discuss.hashicorp.com link")
	rep.AddReview("docs/index.mdx", 3, "cdk.tf/docs", "cdk.tf shortlink")

	require.NoError(t, s.SaveRun(ctx, rep))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rep.RunID, runs[0].RunID)
	assert.Equal(t, "rename", runs[0].Mode)
	assert.Equal(t, 12, runs[0].FilesProcessed)
	assert.Equal(t, 2, runs[0].ReviewItems)

	items, err := s.ReviewItems(ctx, rep.RunID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "docs/community.mdx", items[0].File)
	assert.Equal(t, 8, items[0].Line)
	assert.Equal(t, "cdk.tf shortlink", items[1].Reason)
}

func TestRecentRunsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, s.SaveRun(ctx, report.New("convert")))
	}

	runs, err := s.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestReviewItemsForUnknownRun(t *testing.T) {
	s := openTestStore(t)
	items, err := s.ReviewItems(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, items)
}
