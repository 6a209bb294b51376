package valutatrade

import (
	"strings"
	"time"
)

// Pair builds the canonical pair name "FROM_TO", uppercase.
// A pair reads as "price of 1 FROM expressed in TO".
func Pair(from, to string) string {
	return strings.ToUpper(from + "_" + to)
}

// Quote is one normalized price observation from one provider at one point
// in time. Rate is always the price of 1 unit of FromCurrency in ToCurrency;
// providers whose upstream reports the inverse convention invert before
// emitting.
type Quote struct {
	Pair         string
	FromCurrency string
	ToCurrency   string
	Rate         float64
	Timestamp    time.Time
	Source       string
	// Meta carries opaque diagnostic fields (request latency, raw id,
	// status code). It is persisted with the history entry untouched.
	Meta map[string]any
}

// HistoryID returns the synthetic id of the quote in the history log,
// "pair_timestamp". Re-ingesting the same quote yields the same id, which
// keeps the log deduplication-friendly.
func (q Quote) HistoryID() string {
	return q.Pair + "_" + q.Timestamp.UTC().Format(time.RFC3339)
}

// HistoryEntry converts the quote into its immutable history form.
func (q Quote) HistoryEntry() HistoryEntry {
	meta := q.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return HistoryEntry{
		ID:           q.HistoryID(),
		FromCurrency: q.FromCurrency,
		ToCurrency:   q.ToCurrency,
		Rate:         q.Rate,
		Timestamp:    q.Timestamp.UTC(),
		Source:       q.Source,
		Meta:         meta,
	}
}

// HistoryEntry is one element of the append-only quote history. Entries are
// never mutated or deleted.
type HistoryEntry struct {
	ID           string         `json:"id"`
	FromCurrency string         `json:"from_currency"`
	ToCurrency   string         `json:"to_currency"`
	Rate         float64        `json:"rate"`
	Timestamp    time.Time      `json:"timestamp"`
	Source       string         `json:"source"`
	Meta         map[string]any `json:"meta"`
}

// PairRate is the current-best value for one pair in the snapshot.
type PairRate struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

// Age returns how old the pair value is at 'now'.
func (p PairRate) Age(now time.Time) time.Duration { return now.Sub(p.UpdatedAt) }

// IsStale reports whether the value is older than the advisory ttl.
// Staleness is reported to callers, never enforced.
func (p PairRate) IsStale(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && p.Age(now) > ttl
}

// RateSnapshot holds the single current-best rate per pair. Each aggregation
// run overwrites the entries it produced quotes for and leaves the others
// untouched.
type RateSnapshot struct {
	Pairs       map[string]PairRate `json:"pairs"`
	LastRefresh time.Time           `json:"last_refresh"`
}

// NewRateSnapshot returns an empty snapshot ready to merge quotes into.
func NewRateSnapshot() *RateSnapshot {
	return &RateSnapshot{Pairs: make(map[string]PairRate)}
}

// Rate looks up the current-best value for a pair.
func (s *RateSnapshot) Rate(pair string) (PairRate, bool) {
	p, ok := s.Pairs[pair]
	return p, ok
}

// Merge overwrites the snapshot entry of every quote's pair. Quotes are
// applied in slice order, so when two quotes carry the same pair the later
// one wins.
func (s *RateSnapshot) Merge(quotes []Quote) {
	if s.Pairs == nil {
		s.Pairs = make(map[string]PairRate)
	}
	for _, q := range quotes {
		s.Pairs[q.Pair] = PairRate{
			Rate:      q.Rate,
			UpdatedAt: q.Timestamp.UTC(),
			Source:    q.Source,
		}
	}
}
