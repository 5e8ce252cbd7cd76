package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// SnapshotSource serves issues from a frozen JSON document of the form
// {"owner/repo": [{"id": 1, "state": "open", "title": "...", "created_at": "..."}]}.
type SnapshotSource struct {
	issues map[string][]domain.RawIssue
	logger *log.Logger
}

// LoadSnapshotFile reads a snapshot from path.
func LoadSnapshotFile(path string, logger *log.Logger) (*SnapshotSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return LoadSnapshot(f, logger)
}

// LoadSnapshot decodes a snapshot from r.
func LoadSnapshot(r io.Reader, logger *log.Logger) (*SnapshotSource, error) {
	var issues map[string][]domain.RawIssue
	if err := json.NewDecoder(r).Decode(&issues); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	logger.Printf("Loaded snapshot with %d repositories.", len(issues))
	return &SnapshotSource{issues: issues, logger: logger}, nil
}

// FetchIssues returns the snapshot entries of repo.
func (s *SnapshotSource) FetchIssues(ctx context.Context, repo string) ([]domain.RawIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raws, ok := s.issues[repo]
	if !ok {
		return nil, fmt.Errorf("repository %q not found in snapshot", repo)
	}
	s.logger.Printf("Read %d issues of %s from snapshot.", len(raws), repo)
	out := make([]domain.RawIssue, len(raws))
	copy(out, raws)
	return out, nil
}
