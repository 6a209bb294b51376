package valutatrade

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestWallet_Withdraw(t *testing.T) {
	testCases := []struct {
		name        string
		balance     string
		amount      string
		wantBalance string
		wantErr     bool
	}{
		{name: "full withdrawal", balance: "100", amount: "100", wantBalance: "0"},
		{name: "partial withdrawal", balance: "100", amount: "40.5", wantBalance: "59.5"},
		{name: "exceeding balance", balance: "1", amount: "5", wantBalance: "1", wantErr: true},
		{name: "zero amount", balance: "100", amount: "0", wantBalance: "100", wantErr: true},
		{name: "negative amount", balance: "100", amount: "-3", wantBalance: "100", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWallet("ETH", d(tc.balance))
			if err != nil {
				t.Fatalf("NewWallet: %v", err)
			}
			err = w.Withdraw(d(tc.amount))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Withdraw(%s) error = %v, wantErr %v", tc.amount, err, tc.wantErr)
			}
			if !w.Balance().Equal(d(tc.wantBalance)) {
				t.Errorf("balance after withdraw = %s, want %s", w.Balance(), tc.wantBalance)
			}
		})
	}
}

func TestWallet_WithdrawInsufficientFundsDetails(t *testing.T) {
	w, _ := NewWallet("ETH", d("1"))

	err := w.Withdraw(d("5"))

	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("Withdraw error = %v, want *InsufficientFundsError", err)
	}
	if !ife.Required.Equal(d("5")) || !ife.Available.Equal(d("1")) || ife.Currency != "ETH" {
		t.Errorf("error details = {required:%s available:%s currency:%s}, want {5 1 ETH}",
			ife.Required, ife.Available, ife.Currency)
	}
	if !w.Balance().Equal(d("1")) {
		t.Errorf("failed withdrawal mutated the balance: %s", w.Balance())
	}
}

func TestWallet_BalanceNeverNegative(t *testing.T) {
	// Any interleaving of deposits and withdrawals keeps the balance >= 0:
	// failed operations leave it unchanged.
	w, _ := NewWallet("BTC", decimal.Zero)
	ops := []struct {
		deposit bool
		amount  string
	}{
		{true, "1"}, {false, "2"}, {false, "0.5"}, {true, "0.25"},
		{false, "0.76"}, {false, "0.7501"}, {true, "-1"}, {false, "0.0001"},
	}
	for _, op := range ops {
		if op.deposit {
			_ = w.Deposit(d(op.amount))
		} else {
			_ = w.Withdraw(d(op.amount))
		}
		if w.Balance().IsNegative() {
			t.Fatalf("balance went negative: %s", w.Balance())
		}
	}
	if want := d("0.7499"); !w.Balance().Equal(want) {
		t.Errorf("final balance = %s, want %s", w.Balance(), want)
	}
}

func TestNewWallet_RejectsNegativeBalance(t *testing.T) {
	_, err := NewWallet("USD", d("-1"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("NewWallet error = %v, want *ValidationError", err)
	}
}

func TestPortfolio_AddCurrencyIsLazyAndIdempotent(t *testing.T) {
	p := NewPortfolio(7)

	if _, ok := p.Wallet("btc"); ok {
		t.Fatal("empty portfolio should hold no wallet")
	}

	w := p.AddCurrency("btc")
	if w.CurrencyCode() != "BTC" {
		t.Errorf("wallet code = %q, want uppercase BTC", w.CurrencyCode())
	}
	if !w.Balance().IsZero() {
		t.Errorf("lazily created wallet balance = %s, want 0", w.Balance())
	}
	if again := p.AddCurrency("BTC"); again != w {
		t.Error("AddCurrency created a second wallet for the same code")
	}
}

func TestPortfolio_JSONRecord(t *testing.T) {
	p := NewPortfolio(3)
	_ = p.AddCurrency("USD").Deposit(d("9500"))
	_ = p.AddCurrency("BTC").Deposit(d("0.01"))

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The record must keep the documented wire shape, balance as a number.
	var wire struct {
		UserID  int `json:"user_id"`
		Wallets map[string]struct {
			CurrencyCode string  `json:"currency_code"`
			Balance      float64 `json:"balance"`
		} `json:"wallets"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}
	if wire.UserID != 3 {
		t.Errorf("user_id = %d, want 3", wire.UserID)
	}
	if got := wire.Wallets["BTC"].Balance; got != 0.01 {
		t.Errorf("BTC balance on the wire = %v, want 0.01", got)
	}

	var back Portfolio
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal portfolio: %v", err)
	}
	w, ok := back.Wallet("USD")
	if !ok || !w.Balance().Equal(d("9500")) {
		t.Errorf("reloaded USD wallet = %v, want balance 9500", w)
	}
}
