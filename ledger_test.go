package valutatrade

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// testLedger returns a logged-in ledger over a fresh store, with the given
// snapshot pairs and a seeded base wallet.
func testLedger(t *testing.T, pairs map[string]float64, seedUSD string) (*Ledger, *Store) {
	t.Helper()

	settings := DefaultSettings(t.TempDir())
	store := NewStore(settings)

	snap := NewRateSnapshot()
	now := time.Now().UTC()
	for pair, rate := range pairs {
		snap.Pairs[pair] = PairRate{Rate: rate, UpdatedAt: now, Source: "test"}
	}
	snap.LastRefresh = now
	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	ledger := NewLedger(settings, store)
	if _, err := ledger.Register("alice", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := ledger.Login("alice", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if seedUSD != "" {
		if err := ledger.Deposit("USD", d(seedUSD)); err != nil {
			t.Fatalf("Deposit: %v", err)
		}
	}
	return ledger, store
}

func TestLedger_RegisterAndLogin(t *testing.T) {
	settings := DefaultSettings(t.TempDir())
	store := NewStore(settings)
	ledger := NewLedger(settings, store)

	id, err := ledger.Register("alice", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != 1 {
		t.Errorf("first user id = %d, want 1", id)
	}
	if _, err := ledger.Register("alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate Register error = %v, want ErrUsernameTaken", err)
	}
	if _, err := ledger.Register("bob", "abc"); err == nil {
		t.Error("Register with a 3-char password should fail")
	}

	if _, err := ledger.Login("alice", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Login with bad password error = %v, want ErrWrongPassword", err)
	}
	if _, err := ledger.Login("nobody", "s3cret"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Login for unknown user error = %v, want ErrUserNotFound", err)
	}
	name, err := ledger.Login("alice", "s3cret")
	if err != nil || name != "alice" {
		t.Errorf("Login = (%q, %v), want (alice, nil)", name, err)
	}

	// Registration must have created an empty portfolio record.
	if _, ok := store.LoadPortfolio(1); !ok {
		t.Error("Register did not create a portfolio record")
	}
}

func TestLedger_OperationsRequireLogin(t *testing.T) {
	settings := DefaultSettings(t.TempDir())
	ledger := NewLedger(settings, NewStore(settings))

	if _, _, err := ledger.Buy("BTC", d("1")); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Buy without login error = %v, want ErrPermissionDenied", err)
	}
	if _, _, err := ledger.Sell("BTC", d("1")); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Sell without login error = %v, want ErrPermissionDenied", err)
	}
	if _, _, err := ledger.PortfolioInfo(""); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("PortfolioInfo without login error = %v, want ErrPermissionDenied", err)
	}
}

func TestLedger_Buy(t *testing.T) {
	ledger, store := testLedger(t, map[string]float64{"BTC_USD": 50000}, "10000")

	rate, cost, err := ledger.Buy("BTC", d("0.01"))
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if rate != 50000 {
		t.Errorf("rate = %v, want 50000", rate)
	}
	if !cost.Equal(d("500")) {
		t.Errorf("cost = %s, want 500", cost)
	}

	// The mutation must be visible in the persisted record, not only in memory.
	p, ok := store.LoadPortfolio(1)
	if !ok {
		t.Fatal("portfolio record missing after buy")
	}
	usd, _ := p.Wallet("USD")
	if !usd.Balance().Equal(d("9500")) {
		t.Errorf("USD balance = %s, want 9500", usd.Balance())
	}
	btc, _ := p.Wallet("BTC")
	if !btc.Balance().Equal(d("0.01")) {
		t.Errorf("BTC balance = %s, want 0.01", btc.Balance())
	}
}

func TestLedger_BuyValidation(t *testing.T) {
	ledger, _ := testLedger(t, map[string]float64{"BTC_USD": 50000}, "10000")

	if _, _, err := ledger.Buy("BTC", d("0")); err == nil {
		t.Error("Buy with zero amount should fail")
	}
	if _, _, err := ledger.Buy("XYZ", d("1")); !errors.Is(err, ErrCurrencyNotFound) {
		t.Errorf("Buy of unknown currency error = %v, want ErrCurrencyNotFound", err)
	}
	if _, _, err := ledger.Buy("ETH", d("1")); !errors.Is(err, ErrRateNotFound) {
		t.Errorf("Buy without a snapshot rate error = %v, want ErrRateNotFound", err)
	}

	// No implicit top-up: an underfunded buy fails and mutates nothing.
	_, _, err := ledger.Buy("BTC", d("1"))
	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("underfunded Buy error = %v, want *InsufficientFundsError", err)
	}
	if ife.Currency != "USD" || !ife.Required.Equal(d("50000")) || !ife.Available.Equal(d("10000")) {
		t.Errorf("error details = %+v, want required 50000, available 10000 USD", ife)
	}
	lines, total, err := ledger.PortfolioInfo("")
	if err != nil {
		t.Fatalf("PortfolioInfo: %v", err)
	}
	if len(lines) != 1 || !total.Equal(d("10000")) {
		t.Errorf("failed buy left visible effects: lines=%v total=%s", lines, total)
	}
}

func TestLedger_BuyRejectsNonPositiveRate(t *testing.T) {
	// A pair priced at zero in the snapshot must not buy currency for free.
	ledger, store := testLedger(t, map[string]float64{"BTC_USD": 0}, "10000")

	_, _, err := ledger.Buy("BTC", d("1"))
	var ade *ApiDataError
	if !errors.As(err, &ade) {
		t.Fatalf("Buy at zero rate error = %v, want *ApiDataError", err)
	}

	p, _ := store.LoadPortfolio(1)
	if _, ok := p.Wallet("BTC"); ok {
		t.Error("zero-rate buy created a BTC wallet")
	}
	usd, _ := p.Wallet("USD")
	if !usd.Balance().Equal(d("10000")) {
		t.Errorf("USD balance = %s, want untouched 10000", usd.Balance())
	}
}

func TestLedger_SellInsufficientFunds(t *testing.T) {
	ledger, store := testLedger(t, map[string]float64{"ETH_USD": 3000}, "10000")
	if _, _, err := ledger.Buy("ETH", d("1")); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	_, _, err := ledger.Sell("ETH", d("5"))
	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("Sell error = %v, want *InsufficientFundsError", err)
	}
	if !ife.Required.Equal(d("5")) || !ife.Available.Equal(d("1")) || ife.Currency != "ETH" {
		t.Errorf("error details = {required:%s available:%s currency:%s}, want {5 1 ETH}",
			ife.Required, ife.Available, ife.Currency)
	}

	// Wallet unchanged, on disk too.
	p, _ := store.LoadPortfolio(1)
	eth, _ := p.Wallet("ETH")
	if !eth.Balance().Equal(d("1")) {
		t.Errorf("ETH balance after failed sell = %s, want 1", eth.Balance())
	}
}

func TestLedger_SellMissingWalletOrRate(t *testing.T) {
	ledger, _ := testLedger(t, map[string]float64{"BTC_USD": 50000}, "10000")

	// No wallet at all reports zero availability.
	_, _, err := ledger.Sell("ETH", d("1"))
	var ife *InsufficientFundsError
	if !errors.As(err, &ife) || !ife.Available.IsZero() {
		t.Errorf("Sell without wallet error = %v, want *InsufficientFundsError with available 0", err)
	}

	// A wallet priced by no snapshot pair must not be sold at zero value.
	if err := ledger.Deposit("SOL", d("2")); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	_, _, err = ledger.Sell("SOL", d("1"))
	var ade *ApiDataError
	if !errors.As(err, &ade) {
		t.Errorf("Sell with unresolvable rate error = %v, want *ApiDataError", err)
	}
}

func TestLedger_BuyThenSellRoundTrip(t *testing.T) {
	ledger, _ := testLedger(t, map[string]float64{"BTC_USD": 50000}, "10000")

	if _, _, err := ledger.Buy("BTC", d("0.01")); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, _, err := ledger.Sell("BTC", d("0.01")); err != nil {
		t.Fatalf("Sell: %v", err)
	}

	// At an unchanged rate the base wallet returns to its pre-buy balance.
	lines, total, err := ledger.PortfolioInfo("")
	if err != nil {
		t.Fatalf("PortfolioInfo: %v", err)
	}
	if !total.Equal(d("10000")) {
		t.Errorf("total after round trip = %s, want 10000", total)
	}
	for _, line := range lines {
		if line.Code == "USD" && !line.Balance.Equal(d("10000")) {
			t.Errorf("USD balance after round trip = %s, want 10000", line.Balance)
		}
		if line.Code == "BTC" && !line.Balance.IsZero() {
			t.Errorf("BTC balance after round trip = %s, want 0", line.Balance)
		}
	}
}

func TestLedger_GetRate(t *testing.T) {
	ledger, _ := testLedger(t, map[string]float64{"BTC_USD": 50000}, "")

	rate, _, err := ledger.GetRate("btc", "usd")
	if err != nil || rate != 50000 {
		t.Errorf("GetRate(btc, usd) = (%v, %v), want (50000, nil)", rate, err)
	}

	if _, _, err := ledger.GetRate("ETH", "USD"); !errors.Is(err, ErrRateNotFound) {
		t.Errorf("GetRate for absent pair error = %v, want ErrRateNotFound", err)
	}
	if _, _, err := ledger.GetRate("XYZ", "USD"); !errors.Is(err, ErrCurrencyNotFound) {
		t.Errorf("GetRate with unknown code error = %v, want ErrCurrencyNotFound", err)
	}
}

func TestLedger_PortfolioInfoReportsUnpricedWallets(t *testing.T) {
	ledger, _ := testLedger(t, map[string]float64{"BTC_USD": 50000}, "1000")
	if err := ledger.Deposit("SOL", d("3")); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	lines, total, err := ledger.PortfolioInfo("USD")
	if err != nil {
		t.Fatalf("PortfolioInfo: %v", err)
	}

	var sol *WalletLine
	for i := range lines {
		if lines[i].Code == "SOL" {
			sol = &lines[i]
		}
	}
	if sol == nil {
		t.Fatal("SOL wallet missing from the report")
	}
	// Unresolvable pair contributes exactly zero but is flagged, so the
	// caller can detect the under-valuation.
	if !sol.Value.IsZero() || !sol.Unpriced {
		t.Errorf("SOL line = %+v, want zero value and Unpriced", sol)
	}
	if !total.Equal(d("1000")) {
		t.Errorf("total = %s, want 1000 (SOL contributes zero)", total)
	}

	amount := decimal.NewFromInt(3)
	if !sol.Balance.Equal(amount) {
		t.Errorf("SOL balance = %s, want %s", sol.Balance, amount)
	}
}
