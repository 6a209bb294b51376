package valutatrade

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger executes trading operations for one authenticated session.
//
// It owns the in-memory portfolio of the logged-in user, prices buy/sell
// conversions against the rate snapshot and flushes every mutation through
// the store. The in-memory portfolio is a cache of the persisted record: if
// a save fails after an in-memory mutation, the portfolio is invalidated and
// reloaded from disk so callers never observe unpersisted state.
//
// A Ledger is not safe for concurrent use; sessions sharing one store
// require external arbitration.
type Ledger struct {
	settings  Settings
	store     *Store
	user      *User
	portfolio *Portfolio
}

// NewLedger creates a ledger with no authenticated user.
func NewLedger(settings Settings, store *Store) *Ledger {
	return &Ledger{settings: settings, store: store}
}

// CurrentUser returns the logged-in user, or nil.
func (l *Ledger) CurrentUser() *User { return l.user }

// BaseCurrency returns the settlement currency of the ledger.
func (l *Ledger) BaseCurrency() string { return l.settings.BaseCurrency }

// Register creates a new user with an empty portfolio record and returns
// the assigned id.
func (l *Ledger) Register(username, password string) (int, error) {
	users := l.store.LoadUsers()
	for _, u := range users {
		if u.Username == username {
			return 0, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
	}

	user, err := NewUser(len(users)+1, username, password)
	if err != nil {
		return 0, err
	}
	users = append(users, user)
	if err := l.store.SaveUsers(users); err != nil {
		return 0, fmt.Errorf("cannot save users: %w", err)
	}
	if err := l.store.SavePortfolio(NewPortfolio(user.ID)); err != nil {
		return 0, fmt.Errorf("cannot create portfolio record: %w", err)
	}
	log.Printf("REGISTER user=%q id=%d result=OK", username, user.ID)
	return user.ID, nil
}

// Login authenticates a user and loads their portfolio into memory.
func (l *Ledger) Login(username, password string) (string, error) {
	var user *User
	for _, u := range l.store.LoadUsers() {
		if u.Username == username {
			user = &u
			break
		}
	}
	if user == nil {
		return "", fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	if !user.VerifyPassword(password) {
		return "", ErrWrongPassword
	}

	l.user = user
	l.reloadPortfolio()
	log.Printf("LOGIN user=%q result=OK", username)
	return user.Username, nil
}

// reloadPortfolio discards the in-memory portfolio and reloads the
// persisted record. A user without a record (e.g. a wiped file) starts with
// an empty portfolio.
func (l *Ledger) reloadPortfolio() {
	if l.user == nil {
		l.portfolio = nil
		return
	}
	p, ok := l.store.LoadPortfolio(l.user.ID)
	if !ok {
		p = NewPortfolio(l.user.ID)
	}
	l.portfolio = p
}

// GetRate returns the current-best rate and its update time for the pair
// FROM_TO. Both codes must exist in the currency registry, and the pair
// must be present in the snapshot.
func (l *Ledger) GetRate(from, to string) (float64, time.Time, error) {
	if _, err := GetCurrency(from); err != nil {
		return 0, time.Time{}, err
	}
	if _, err := GetCurrency(to); err != nil {
		return 0, time.Time{}, err
	}
	pair := Pair(from, to)
	pr, ok := l.store.LoadSnapshot().Rate(pair)
	if !ok {
		return 0, time.Time{}, &RateError{Pair: pair}
	}
	return pr.Rate, pr.UpdatedAt, nil
}

// Deposit credits the given currency wallet. It is how a fresh account
// funds its base wallet before trading.
func (l *Ledger) Deposit(currencyCode string, amount decimal.Decimal) error {
	err := l.deposit(currencyCode, amount)
	l.logAction("DEPOSIT", currencyCode, amount, 0, decimal.Zero, err)
	return err
}

func (l *Ledger) deposit(currencyCode string, amount decimal.Decimal) error {
	if l.user == nil {
		return ErrPermissionDenied
	}
	if !amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	cur, err := GetCurrency(currencyCode)
	if err != nil {
		return err
	}
	if err := l.portfolio.AddCurrency(cur.Code()).Deposit(amount); err != nil {
		return err
	}
	return l.persistPortfolio()
}

// Buy purchases amount units of the currency, paying from the base-currency
// wallet at the snapshot rate for CURRENCY_BASE. It returns the rate used
// and the cost in base currency.
func (l *Ledger) Buy(currencyCode string, amount decimal.Decimal) (rate float64, cost decimal.Decimal, err error) {
	rate, cost, err = l.buy(currencyCode, amount)
	l.logAction("BUY", currencyCode, amount, rate, cost, err)
	return rate, cost, err
}

func (l *Ledger) buy(currencyCode string, amount decimal.Decimal) (float64, decimal.Decimal, error) {
	if l.user == nil {
		return 0, decimal.Zero, ErrPermissionDenied
	}
	if !amount.IsPositive() {
		return 0, decimal.Zero, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	cur, err := GetCurrency(currencyCode)
	if err != nil {
		return 0, decimal.Zero, err
	}

	pair := Pair(cur.Code(), l.settings.BaseCurrency)
	pr, ok := l.store.LoadSnapshot().Rate(pair)
	if !ok {
		return 0, decimal.Zero, &RateError{Pair: pair}
	}
	// A non-positive rate would price the purchase at zero or less.
	if pr.Rate <= 0 {
		return 0, decimal.Zero, &ApiDataError{Pair: pair, Reason: "non-positive rate"}
	}

	cost := amount.Mul(decimal.NewFromFloat(pr.Rate))
	base := l.portfolio.AddCurrency(l.settings.BaseCurrency)

	// Withdraw checks the funds invariant; a failure here leaves both
	// wallets untouched, so the two mutations below are atomic as a pair.
	if err := base.Withdraw(cost); err != nil {
		return pr.Rate, decimal.Zero, err
	}
	if err := l.portfolio.AddCurrency(cur.Code()).Deposit(amount); err != nil {
		return pr.Rate, decimal.Zero, err
	}

	if err := l.persistPortfolio(); err != nil {
		return pr.Rate, decimal.Zero, err
	}
	return pr.Rate, cost, nil
}

// Sell sells amount units of the currency out of its wallet and credits the
// base-currency wallet at the snapshot rate for CURRENCY_BASE. It returns
// the rate used and the revenue in base currency.
func (l *Ledger) Sell(currencyCode string, amount decimal.Decimal) (rate float64, revenue decimal.Decimal, err error) {
	rate, revenue, err = l.sell(currencyCode, amount)
	l.logAction("SELL", currencyCode, amount, rate, revenue, err)
	return rate, revenue, err
}

func (l *Ledger) sell(currencyCode string, amount decimal.Decimal) (float64, decimal.Decimal, error) {
	if l.user == nil {
		return 0, decimal.Zero, ErrPermissionDenied
	}
	if !amount.IsPositive() {
		return 0, decimal.Zero, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	cur, err := GetCurrency(currencyCode)
	if err != nil {
		return 0, decimal.Zero, err
	}

	wallet, ok := l.portfolio.Wallet(cur.Code())
	if !ok {
		return 0, decimal.Zero, &InsufficientFundsError{Required: amount, Available: decimal.Zero, Currency: cur.Code()}
	}
	if amount.GreaterThan(wallet.Balance()) {
		return 0, decimal.Zero, &InsufficientFundsError{Required: amount, Available: wallet.Balance(), Currency: cur.Code()}
	}

	// Selling into an unresolvable rate is rejected, never valued at zero.
	pair := Pair(cur.Code(), l.settings.BaseCurrency)
	pr, ok := l.store.LoadSnapshot().Rate(pair)
	if !ok || pr.Rate <= 0 {
		return 0, decimal.Zero, &ApiDataError{Pair: pair, Reason: "missing or zero rate"}
	}

	revenue := amount.Mul(decimal.NewFromFloat(pr.Rate))
	if err := wallet.Withdraw(amount); err != nil {
		return pr.Rate, decimal.Zero, err
	}
	if err := l.portfolio.AddCurrency(l.settings.BaseCurrency).Deposit(revenue); err != nil {
		return pr.Rate, decimal.Zero, err
	}

	if err := l.persistPortfolio(); err != nil {
		return pr.Rate, decimal.Zero, err
	}
	return pr.Rate, revenue, nil
}

// WalletLine is one row of a portfolio valuation.
type WalletLine struct {
	Code    string
	Balance decimal.Decimal
	// Value is the balance expressed in the valuation base currency.
	Value decimal.Decimal
	// Unpriced marks a wallet whose pair was unresolvable. Its value is
	// exactly zero, and the flag lets the caller surface the
	// under-valuation instead of hiding it in the total.
	Unpriced bool
}

// PortfolioInfo values every wallet in the given base currency using the
// snapshot (identity for the base wallet itself) and returns the lines with
// the grand total.
func (l *Ledger) PortfolioInfo(baseCurrency string) ([]WalletLine, decimal.Decimal, error) {
	if l.user == nil {
		return nil, decimal.Zero, ErrPermissionDenied
	}
	if baseCurrency == "" {
		baseCurrency = l.settings.BaseCurrency
	}
	base, err := GetCurrency(baseCurrency)
	if err != nil {
		return nil, decimal.Zero, err
	}

	snap := l.store.LoadSnapshot()
	total := decimal.Zero
	var lines []WalletLine
	for _, code := range l.portfolio.Codes() {
		wallet, _ := l.portfolio.Wallet(code)
		line := WalletLine{Code: code, Balance: wallet.Balance()}
		switch pr, ok := snap.Rate(Pair(code, base.Code())); {
		case code == base.Code():
			line.Value = wallet.Balance()
		case ok && pr.Rate > 0:
			line.Value = wallet.Balance().Mul(decimal.NewFromFloat(pr.Rate))
		default:
			line.Unpriced = true
		}
		total = total.Add(line.Value)
		lines = append(lines, line)
	}
	return lines, total, nil
}

// logAction emits one structured event per operation outcome. Success and
// failure paths carry the same field set so the action log stays greppable.
func (l *Ledger) logAction(action, currencyCode string, amount decimal.Decimal, rate float64, value decimal.Decimal, err error) {
	user := "GUEST"
	if l.user != nil {
		user = l.user.Username
	}
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if err != nil {
		log.Printf("%s user=%q currency=%q amount=%s result=ERROR error=%T msg=%q",
			action, user, currencyCode, amount, err, err.Error())
		return
	}
	log.Printf("%s user=%q currency=%q amount=%s rate=%v value=%s result=OK",
		action, user, currencyCode, amount, rate, value.StringFixed(2))
}

// persistPortfolio flushes the in-memory portfolio. On failure the cache is
// invalidated and reloaded so memory and disk cannot silently diverge.
func (l *Ledger) persistPortfolio() error {
	if err := l.store.SavePortfolio(l.portfolio); err != nil {
		l.reloadPortfolio()
		return fmt.Errorf("cannot persist portfolio (reloaded from disk): %w", err)
	}
	return nil
}
