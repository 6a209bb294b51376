package valutatrade

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Wallet is a single currency balance belonging to one portfolio.
//
// Invariant: the balance is never negative. Any operation that would break
// that fails without mutating the wallet.
type Wallet struct {
	currencyCode string
	balance      decimal.Decimal
}

// NewWallet creates a wallet. A negative starting balance is rejected.
func NewWallet(currencyCode string, balance decimal.Decimal) (*Wallet, error) {
	if balance.IsNegative() {
		return nil, &ValidationError{Field: "balance", Reason: "must not be negative"}
	}
	return &Wallet{currencyCode: strings.ToUpper(currencyCode), balance: balance}, nil
}

// CurrencyCode returns the wallet currency, uppercase.
func (w *Wallet) CurrencyCode() string { return w.currencyCode }

// Balance returns the current balance.
func (w *Wallet) Balance() decimal.Decimal { return w.balance }

// Deposit credits the wallet. The amount must be positive.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "deposit must be positive"}
	}
	w.balance = w.balance.Add(amount)
	return nil
}

// Withdraw debits the wallet. The amount must be positive and must not
// exceed the balance.
func (w *Wallet) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "withdrawal must be positive"}
	}
	if amount.GreaterThan(w.balance) {
		return &InsufficientFundsError{Required: amount, Available: w.balance, Currency: w.currencyCode}
	}
	w.balance = w.balance.Sub(amount)
	return nil
}

// BalanceInfo returns a one-line balance description.
func (w *Wallet) BalanceInfo() string {
	return fmt.Sprintf("%s: %s", w.currencyCode, w.balance.StringFixed(4))
}

// jwallet is the wire form of a wallet. The balance is persisted as a plain
// JSON number.
type jwallet struct {
	CurrencyCode string      `json:"currency_code"`
	Balance      json.Number `json:"balance"`
}

func (w *Wallet) MarshalJSON() ([]byte, error) {
	return json.Marshal(jwallet{
		CurrencyCode: w.currencyCode,
		Balance:      json.Number(w.balance.String()),
	})
}

func (w *Wallet) UnmarshalJSON(data []byte) error {
	var jw jwallet
	if err := json.Unmarshal(data, &jw); err != nil {
		return err
	}
	balance, err := decimal.NewFromString(jw.Balance.String())
	if err != nil {
		return fmt.Errorf("wallet %q has an invalid balance %q: %w", jw.CurrencyCode, jw.Balance, err)
	}
	if balance.IsNegative() {
		return fmt.Errorf("wallet %q has a negative balance %s", jw.CurrencyCode, balance)
	}
	w.currencyCode = strings.ToUpper(jw.CurrencyCode)
	w.balance = balance
	return nil
}

// Portfolio is the full set of one user's wallets, keyed by uppercase
// currency code. It is owned exclusively by the ledger during a session and
// persisted as a whole record per save.
type Portfolio struct {
	userID  int
	wallets map[string]*Wallet
}

// NewPortfolio creates an empty portfolio for a user.
func NewPortfolio(userID int) *Portfolio {
	return &Portfolio{userID: userID, wallets: make(map[string]*Wallet)}
}

// UserID returns the owning user id.
func (p *Portfolio) UserID() int { return p.userID }

// Wallet returns the wallet for a currency code, if held.
func (p *Portfolio) Wallet(currencyCode string) (*Wallet, bool) {
	w, ok := p.wallets[strings.ToUpper(currencyCode)]
	return w, ok
}

// AddCurrency returns the wallet for the code, creating an empty one on
// first use.
func (p *Portfolio) AddCurrency(currencyCode string) *Wallet {
	code := strings.ToUpper(currencyCode)
	w, ok := p.wallets[code]
	if !ok {
		w = &Wallet{currencyCode: code}
		p.wallets[code] = w
	}
	return w
}

// Codes returns the held currency codes, sorted.
func (p *Portfolio) Codes() []string {
	codes := make([]string, 0, len(p.wallets))
	for code := range p.wallets {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// jportfolio is the wire form of a portfolio record.
type jportfolio struct {
	UserID  int                `json:"user_id"`
	Wallets map[string]*Wallet `json:"wallets"`
}

func (p *Portfolio) MarshalJSON() ([]byte, error) {
	return json.Marshal(jportfolio{UserID: p.userID, Wallets: p.wallets})
}

func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var jp jportfolio
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	p.userID = jp.UserID
	p.wallets = make(map[string]*Wallet, len(jp.Wallets))
	for code, w := range jp.Wallets {
		p.wallets[strings.ToUpper(code)] = w
	}
	return nil
}
