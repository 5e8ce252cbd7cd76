package gateway

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSnapshot = `{
  "owner1/repository1": [
    {"id": 38, "state": "open", "title": "Found a bug", "created_at": "2011-04-22T13:33:48Z"},
    {"id": "23", "state": "open", "title": "Found a bug 2"}
  ],
  "owner2/repository2": []
}`

func TestSnapshotSource_FetchIssues(t *testing.T) {
	source, err := LoadSnapshot(strings.NewReader(testSnapshot), log.New(io.Discard, "", 0))
	require.NoError(t, err)

	raws, err := source.FetchIssues(context.Background(), "owner1/repository1")
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "38", raws[0].ID.String())
	assert.Equal(t, "2011-04-22T13:33:48Z", *raws[0].CreatedAt)
	assert.Equal(t, "23", raws[1].ID.String())
	assert.Nil(t, raws[1].CreatedAt)

	raws, err = source.FetchIssues(context.Background(), "owner2/repository2")
	require.NoError(t, err)
	assert.Empty(t, raws)

	_, err = source.FetchIssues(context.Background(), "owner3/repository3")
	assert.ErrorContains(t, err, "not found in snapshot")
}

func TestSnapshotSource_BadlyTypedRecordsDoNotRejectTheFile(t *testing.T) {
	input := `{
  "a/x": [
    {"id": 1, "state": "open", "title": "ok", "created_at": "2011-04-22T13:33:48Z"},
    {"id": "abc", "state": "open", "title": "bad id", "created_at": "2011-04-22T13:33:48Z"},
    {"id": 3, "state": "open", "title": "bad date", "created_at": 1303479228}
  ],
  "b/y": []
}`
	source, err := LoadSnapshot(strings.NewReader(input), log.New(io.Discard, "", 0))
	require.NoError(t, err)

	raws, err := source.FetchIssues(context.Background(), "a/x")
	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.Equal(t, "abc", raws[1].ID.String())
	field, fieldErr := raws[2].FieldError()
	assert.Equal(t, "created_at", field)
	assert.Error(t, fieldErr)

	raws, err = source.FetchIssues(context.Background(), "b/y")
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestSnapshotSource_CanceledContext(t *testing.T) {
	source, err := LoadSnapshot(strings.NewReader(testSnapshot), log.New(io.Discard, "", 0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.FetchIssues(ctx, "owner1/repository1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(testSnapshot), 0o600))

	source, err := LoadSnapshotFile(path, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Len(t, source.issues, 2)

	_, err = LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"), log.New(io.Discard, "", 0))
	assert.ErrorContains(t, err, "failed to open snapshot")

	_, err = LoadSnapshot(strings.NewReader("[]"), log.New(io.Discard, "", 0))
	assert.ErrorContains(t, err, "failed to decode snapshot")
}
