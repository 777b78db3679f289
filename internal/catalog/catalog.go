package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Challenge is one catalog entry. The accepted flag set is matched
// case-insensitively against the whole submission, never as a substring.
type Challenge struct {
	ID           int
	Title        string
	Prompt       string
	Flags        []string
	UnlockAt     time.Time
	MaterialLink string
}

// Catalog is the read-only challenge table, built once at startup and passed
// into the evaluator and presentation layers.
type Catalog struct {
	challenges []Challenge
}

// New validates and freezes a challenge set. Ids must be dense from 0 and
// every challenge needs at least one accepted flag.
func New(challenges []Challenge) (*Catalog, error) {
	sorted := make([]Challenge, len(challenges))
	copy(sorted, challenges)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].ID < sorted[b].ID })

	for i, ch := range sorted {
		if ch.ID != i {
			return nil, fmt.Errorf("challenge ids must be contiguous from 0, got %d at position %d", ch.ID, i)
		}
		if len(ch.Flags) == 0 {
			return nil, fmt.Errorf("challenge %d has no accepted flags", ch.ID)
		}
	}
	return &Catalog{challenges: sorted}, nil
}

func (c *Catalog) Get(id int) (Challenge, bool) {
	if id < 0 || id >= len(c.challenges) {
		return Challenge{}, false
	}
	return c.challenges[id], true
}

func (c *Catalog) All() []Challenge {
	out := make([]Challenge, len(c.challenges))
	copy(out, c.challenges)
	return out
}

func (c *Catalog) Len() int {
	return len(c.challenges)
}

// IsUnlocked is a pure function of the clock; the caller injects now.
func (c *Catalog) IsUnlocked(id int, now time.Time) bool {
	ch, ok := c.Get(id)
	if !ok {
		return false
	}
	return !now.Before(ch.UnlockAt)
}

// Matches reports whether a submission equals one of the accepted flags.
// Comparison is trim + uppercase on both sides, whole token only.
func (ch Challenge) Matches(submission string) bool {
	normalized := Normalize(submission)
	for _, f := range ch.Flags {
		if Normalize(f) == normalized {
			return true
		}
	}
	return false
}

func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
