package valutatrade

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store persists the hub collections as JSON files inside the data
// directory.
//
// Reads degrade: a missing or unparseable file loads as the empty default
// collection, trading potential data loss for availability. Writes are
// atomic: the value is serialized to a temporary file which is then renamed
// into place, so a crash mid-write never leaves a torn file visible to a
// later load.
//
// There is no cross-process locking. Two processes writing the same
// collection race with last-writer-wins semantics; arbitration, if needed,
// is the caller's problem.
type Store struct {
	usersFile      string
	portfoliosFile string
	ratesFile      string
	historyFile    string
}

// NewStore creates a store over the files named in the settings.
func NewStore(s Settings) *Store {
	return &Store{
		usersFile:      s.UsersFile,
		portfoliosFile: s.PortfoliosFile,
		ratesFile:      s.RatesFile,
		historyFile:    s.HistoryFile,
	}
}

// readJSON loads a JSON file into v. Returns false when the file is absent
// or unparseable, in which case v is left untouched and the caller keeps its
// empty default.
func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store-read file=%q result=ERROR err=%v (using empty default)", path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("store-parse file=%q result=ERROR err=%v (using empty default)", path, err)
		return false
	}
	return true
}

// writeJSON atomically replaces path with the JSON encoding of v.
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal %q: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot rename %q into place: %w", tmp, err)
	}
	return nil
}

// LoadUsers returns all registered users, or an empty list.
func (s *Store) LoadUsers() []User {
	users := []User{}
	readJSON(s.usersFile, &users)
	return users
}

// SaveUsers replaces the users collection.
func (s *Store) SaveUsers(users []User) error {
	return writeJSON(s.usersFile, users)
}

// LoadPortfolios returns all portfolio records, or an empty list.
func (s *Store) LoadPortfolios() []*Portfolio {
	portfolios := []*Portfolio{}
	readJSON(s.portfoliosFile, &portfolios)
	return portfolios
}

// SavePortfolios replaces the portfolios collection.
func (s *Store) SavePortfolios(portfolios []*Portfolio) error {
	return writeJSON(s.portfoliosFile, portfolios)
}

// LoadPortfolio returns the portfolio record of one user, if present.
func (s *Store) LoadPortfolio(userID int) (*Portfolio, bool) {
	for _, p := range s.LoadPortfolios() {
		if p.UserID() == userID {
			return p, true
		}
	}
	return nil, false
}

// SavePortfolio upserts one user's record into the portfolios collection.
func (s *Store) SavePortfolio(portfolio *Portfolio) error {
	portfolios := s.LoadPortfolios()
	replaced := false
	for i, p := range portfolios {
		if p.UserID() == portfolio.UserID() {
			portfolios[i] = portfolio
			replaced = true
			break
		}
	}
	if !replaced {
		portfolios = append(portfolios, portfolio)
	}
	return s.SavePortfolios(portfolios)
}

// LoadSnapshot returns the current rate snapshot, or an empty one.
func (s *Store) LoadSnapshot() *RateSnapshot {
	snap := NewRateSnapshot()
	readJSON(s.ratesFile, snap)
	if snap.Pairs == nil {
		snap.Pairs = make(map[string]PairRate)
	}
	return snap
}

// SaveSnapshot replaces the rate snapshot.
func (s *Store) SaveSnapshot(snap *RateSnapshot) error {
	return writeJSON(s.ratesFile, snap)
}

// LoadHistory returns the full quote history, or an empty list.
func (s *Store) LoadHistory() []HistoryEntry {
	history := []HistoryEntry{}
	readJSON(s.historyFile, &history)
	return history
}

// AppendHistory appends entries to the history log. The file stays a single
// valid JSON array, which means the whole log is re-read and rewritten per
// append; acceptable at this scale.
func (s *Store) AppendHistory(entries []HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	history := s.LoadHistory()
	history = append(history, entries...)
	return writeJSON(s.historyFile, history)
}
