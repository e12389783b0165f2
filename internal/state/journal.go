// internal/state/journal.go
package state

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/types"
)

// Entry is one journaled event with its position in the connection's log.
type Entry struct {
	ID      types.EntryID   `json:"id"`
	ConnID  types.ConnID    `json:"conn_id"`
	Seq     int64           `json:"seq"`
	Kind    irc.EventKind   `json:"kind"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

// Journal is a JSONL-backed append-only event log.
// Entries are stored per-connection in connections/<connID>/events.jsonl.
type Journal struct {
	root  string
	mu    sync.Mutex
	locks map[types.ConnID]*sync.Mutex
}

// NewJournal creates a new file-backed Journal rooted at the given directory.
func NewJournal(root string) *Journal {
	return &Journal{
		root:  root,
		locks: make(map[types.ConnID]*sync.Mutex),
	}
}

// getLock returns the per-connection mutex, creating one if it doesn't exist.
func (j *Journal) getLock(connID types.ConnID) *sync.Mutex {
	j.mu.Lock()
	defer j.mu.Unlock()

	if lock, ok := j.locks[connID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	j.locks[connID] = lock
	return lock
}

func (j *Journal) entriesPath(connID types.ConnID) string {
	return filepath.Join(j.root, "connections", string(connID), "events.jsonl")
}

// count reads the entries file and counts lines. Caller must hold the
// connection lock.
func (j *Journal) count(connID types.ConnID) (int64, error) {
	f, err := os.Open(j.entriesPath(connID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()

	var count int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan journal file: %w", err)
	}
	return count, nil
}

// Append adds an entry to the connection's log with an auto-incremented
// sequence number.
func (j *Journal) Append(_ context.Context, entry *Entry) error {
	lock := j.getLock(entry.ConnID)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Dir(j.entriesPath(entry.ConnID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create connection dir: %w", err)
	}

	existing, err := j.count(entry.ConnID)
	if err != nil {
		return err
	}
	entry.Seq = existing + 1

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	f, err := os.OpenFile(j.entriesPath(entry.ConnID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()

	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	return nil
}

// Record journals one parsed event: the payload is the event itself, the
// timestamp is now. It is shaped to sit directly behind a bus subscription.
func (j *Journal) Record(ctx context.Context, connID types.ConnID, ev irc.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return j.Append(ctx, &Entry{
		ID:      types.NewEntryID(),
		ConnID:  connID,
		Kind:    ev.Kind(),
		At:      time.Now().UTC(),
		Payload: payload,
	})
}

// Tail returns the last N entries for the given connection.
func (j *Journal) Tail(_ context.Context, connID types.ConnID, limit int) ([]*Entry, error) {
	lock := j.getLock(connID)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(j.entriesPath(connID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal file: %w", err)
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return entries, nil
}

// Count returns the number of entries for the given connection.
func (j *Journal) Count(_ context.Context, connID types.ConnID) (int64, error) {
	lock := j.getLock(connID)
	lock.Lock()
	defer lock.Unlock()

	return j.count(connID)
}
