package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the file layout changes.
const SnapshotVersion = 1

// SnapshotFile wraps a session snapshot saved for a bookmark.
type SnapshotFile struct {
	Version  int       `json:"version"`
	Bookmark *Bookmark `json:"bookmark,omitempty"`
	Session  any       `json:"session"`
}

// SaveSnapshot writes a snapshot to dir and returns its path.
func SaveSnapshot(snapshot *SnapshotFile, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := "snapshot"
	if b := snapshot.Bookmark; b != nil {
		id := b.SessionID
		if len(id) > 8 {
			id = id[:8]
		}
		name = fmt.Sprintf("snapshot_%s_l%d_%s", id, b.Level, strings.ReplaceAll(string(b.Type), " ", "_"))
	}
	path := filepath.Join(dir, name+".json")

	snapshot.Version = SnapshotVersion
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk. The session is decoded into a
// generic JSON value.
func LoadSnapshot(path string) (*SnapshotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot SnapshotFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
