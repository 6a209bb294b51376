package valutatrade

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// Updater orchestrates all configured rate providers and reconciles their
// quotes into the persistent snapshot and history.
type Updater struct {
	store     *Store
	providers []RateProvider
	now       func() time.Time
}

// NewUpdater creates an updater over the given providers. Provider order
// matters: when two providers emit the same pair in one run, the quote of
// the later-registered provider wins in the snapshot.
func NewUpdater(store *Store, providers ...RateProvider) *Updater {
	return &Updater{store: store, providers: providers, now: time.Now}
}

// RunUpdate invokes every provider whose name contains sourceFilter
// (case-insensitive; empty matches all), merges the quotes and persists
// them.
//
// Provider failures are logged and skipped; they never abort the run or
// suppress the other providers' results. Providers are fetched in parallel,
// one goroutine each, bounded by each provider's own timeout; results are
// then merged in registration order so the pair tie-break stays
// deterministic.
//
// When at least one quote was obtained, every quote is appended to the
// history, the snapshot entry of every quoted pair is overwritten and
// last_refresh is set to the run timestamp. The returned count is the total
// number of quotes written; zero means no source produced data, which is
// reportable but not an error.
func (u *Updater) RunUpdate(ctx context.Context, sourceFilter string) (int, error) {
	log.Printf("rates-update start filter=%q", sourceFilter)

	var selected []RateProvider
	for _, p := range u.providers {
		if sourceFilter == "" || strings.Contains(strings.ToLower(p.Name()), strings.ToLower(sourceFilter)) {
			selected = append(selected, p)
		}
	}

	results := make([][]Quote, len(selected))
	var wg sync.WaitGroup
	for i, p := range selected {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			quotes, err := p.FetchRates(ctx)
			if err != nil {
				log.Printf("rates-update provider=%q result=ERROR err=%v", p.Name(), err)
				return
			}
			log.Printf("rates-update provider=%q result=OK quotes=%d", p.Name(), len(quotes))
			results[i] = quotes
		}()
	}
	wg.Wait()

	var all []Quote
	for _, quotes := range results {
		all = append(all, quotes...)
	}
	if len(all) == 0 {
		log.Printf("rates-update done result=EMPTY (no source produced data)")
		return 0, nil
	}

	entries := make([]HistoryEntry, 0, len(all))
	for _, q := range all {
		entries = append(entries, q.HistoryEntry())
	}
	if err := u.store.AppendHistory(entries); err != nil {
		return 0, err
	}

	snap := u.store.LoadSnapshot()
	snap.Merge(all)
	snap.LastRefresh = u.now().UTC()
	if err := u.store.SaveSnapshot(snap); err != nil {
		return 0, err
	}

	log.Printf("rates-update done result=OK quotes=%d", len(all))
	return len(all), nil
}
