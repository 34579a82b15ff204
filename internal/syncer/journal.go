package syncer

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Journal op codes.
const (
	OpResetScores = "reset-scores"
)

// JournalEntry records one mutation that was applied locally after the
// server call failed.
type JournalEntry struct {
	Op       string `msgpack:"op"`
	PlayerID string `msgpack:"player_id"`
	At       int64  `msgpack:"at"`
}

// Journal is a MessagePack-encoded file of locally-applied mutations
// awaiting replay. It is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	path    string
	entries []JournalEntry
}

// OpenJournal loads the journal at path, creating an empty one if the
// file does not exist. A corrupt file is discarded rather than blocking
// startup.
func OpenJournal(path string) (*Journal, error) {
	j := &Journal{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return j, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	if err := msgpack.Unmarshal(data, &j.entries); err != nil {
		log.Warn("Discarding corrupt offline journal", "path", path, "error", err)
		j.entries = nil
	}
	return j, nil
}

// Append adds an entry and persists the journal. Persistence failures
// are logged, not returned: the in-memory entry still allows replay
// within this session.
func (j *Journal) Append(entry JournalEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	if err := j.saveLocked(); err != nil {
		log.Error("Failed to persist offline journal", "error", err, "path", j.path)
	}
}

// Entries returns a copy of the pending entries.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Replace swaps the pending entries wholesale and persists.
func (j *Journal) Replace(entries []JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = entries
	return j.saveLocked()
}

func (j *Journal) saveLocked() error {
	if len(j.entries) == 0 {
		err := os.Remove(j.path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := msgpack.Marshal(j.entries)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	return os.WriteFile(j.path, data, 0o644)
}
