package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultPrefix is the reference prefix used for journal entries.
const DefaultPrefix = "JE"

// New returns a fresh random identifier.
func New() string {
	return uuid.NewString()
}

// FormatReference returns a human reference like "JE-2025-01-0001".
func FormatReference(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%04d", prefix, year, month, seq)
}

// ParseReference parses "JE-2025-01-0001" into prefix, year, month, seq.
func ParseReference(ref string) (prefix string, year, month, seq int, err error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] == "" {
		return "", 0, 0, 0, fmt.Errorf("invalid reference format: %q", ref)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in reference %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid month in reference %q: %w", ref, err)
	}
	if month < 1 || month > 12 {
		return "", 0, 0, 0, fmt.Errorf("month %d out of range in reference %q", month, ref)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in reference %q: %w", ref, err)
	}

	return parts[0], year, month, seq, nil
}

// Sequence hands out per-month reference sequence numbers.
// It is not safe for concurrent use; the ledger guards it.
type Sequence struct {
	last map[string]int
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{last: make(map[string]int)}
}

// Next returns the next sequence number for year/month, starting at 1.
func (s *Sequence) Next(year, month int) int {
	key := fmt.Sprintf("%04d-%02d", year, month)
	s.last[key]++
	return s.last[key]
}

// Observe records seq as used so Next never hands it out again.
func (s *Sequence) Observe(year, month, seq int) {
	key := fmt.Sprintf("%04d-%02d", year, month)
	if seq > s.last[key] {
		s.last[key] = seq
	}
}
