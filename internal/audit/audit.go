// Package audit records ledger mutations as an append-only trail.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Actions recorded by the ledger.
const (
	ActionEntityAdded    = "entity_added"
	ActionAccountAdded   = "account_added"
	ActionAccountUpdated = "account_updated"
	ActionEntryRecorded  = "entry_recorded"
	ActionEntryPosted    = "entry_posted"
	ActionEntryRejected  = "entry_rejected"
)

// Event is one row in the audit trail.
type Event struct {
	Timestamp time.Time
	Actor     string
	Action    string
	Subject   string // ID of the entity, account or entry affected
	Details   string
}

// Header is the CSV header for an audit trail export.
const Header = "timestamp,actor,action,subject,details"

const (
	numFields    = 5
	colTimestamp = 0
	colActor     = 1
	colAction    = 2
	colSubject   = 3
	colDetails   = 4
)

// Trail is an append-only, concurrency-safe list of events.
type Trail struct {
	mu     sync.Mutex
	events []Event
}

// NewTrail creates an empty Trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Record appends an event.
func (t *Trail) Record(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
}

// Events returns a copy of all events in the order they were recorded.
func (t *Trail) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Len returns the number of recorded events.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(e Event) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colActor] = e.Actor
	row[colAction] = e.Action
	row[colSubject] = e.Subject
	row[colDetails] = e.Details
	return row
}

// UnmarshalEvent converts a CSV row to an Event.
func UnmarshalEvent(record []string) (Event, error) {
	if len(record) != numFields {
		return Event{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Event{
		Timestamp: ts,
		Actor:     record[colActor],
		Action:    record[colAction],
		Subject:   record[colSubject],
		Details:   record[colDetails],
	}, nil
}

// WriteCSV writes events to w, including the header.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range events {
		if err := cw.Write(MarshalEvent(e)); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses events written by WriteCSV or AppendFile.
func ReadCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var events []Event
	for i, rec := range records[1:] {
		e, err := UnmarshalEvent(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// AppendFile appends events to the CSV file at path, creating the file,
// its directory and the header if needed.
func AppendFile(path string, events []Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating audit log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range events {
		if err := cw.Write(MarshalEvent(e)); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile returns all events from the CSV file at path.
// Returns an empty slice if the file does not exist.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}
