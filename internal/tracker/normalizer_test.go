package tracker

import (
	"reflect"
	"testing"

	"github.com/skuubrain/Solscanner/internal/domain"
)

func TestNormalizeBalancesShapes(t *testing.T) {
	// The same wallet rendered through three payload envelopes must
	// normalize identically.
	payloads := map[string]string{
		"bare array":    `[{"mint":"m1","amount":5,"symbol":"AAA","name":"Token A"}]`,
		"tokens object": `{"tokens":[{"mint":"m1","amount":5,"symbol":"AAA","name":"Token A"}]}`,
		"data object":   `{"data":[{"mint":"m1","amount":5,"symbol":"AAA","name":"Token A"}]}`,
	}

	want := []domain.TokenPosition{{Mint: "m1", Symbol: "AAA", Name: "Token A", Amount: 5, RawAmount: 5}}
	for name, payload := range payloads {
		got := NormalizePositions([]byte(payload), domain.SourceBalances)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}
}

func TestNormalizeBalancesAliasPriority(t *testing.T) {
	// mint wins over address, amount wins over balance.
	payload := `[{"mint":"m1","address":"ignored","amount":3,"balance":99}]`
	got := NormalizePositions([]byte(payload), domain.SourceBalances)
	if len(got) != 1 {
		t.Fatalf("expected 1 position, got %d", len(got))
	}
	if got[0].Mint != "m1" {
		t.Errorf("expected mint alias to win, got %q", got[0].Mint)
	}
	if got[0].Amount != 3 {
		t.Errorf("expected amount alias to win, got %v", got[0].Amount)
	}
}

func TestNormalizeBalancesAliasFallbacks(t *testing.T) {
	payload := `[{"tokenAddress":"m2","uiAmount":7.5}]`
	got := NormalizePositions([]byte(payload), domain.SourceBalances)
	if len(got) != 1 {
		t.Fatalf("expected 1 position, got %d", len(got))
	}
	p := got[0]
	if p.Mint != "m2" || p.Amount != 7.5 {
		t.Errorf("unexpected position %+v", p)
	}
	if p.Symbol != domain.UnknownSymbol || p.Name != domain.UnknownName {
		t.Errorf("expected unknown metadata placeholders, got %q / %q", p.Symbol, p.Name)
	}
}

func TestNormalizeBalancesSkipsIncompleteRows(t *testing.T) {
	payload := `[
		{"amount":5},
		{"mint":"m1","amount":0},
		{"mint":"m2","amount":-3},
		{"mint":"m3","amount":"not-a-number"},
		{"mint":"m4","amount":1}
	]`
	got := NormalizePositions([]byte(payload), domain.SourceBalances)
	if len(got) != 1 || got[0].Mint != "m4" {
		t.Fatalf("expected only the complete row to survive, got %+v", got)
	}
}

func TestNormalizeBalancesDecimals(t *testing.T) {
	payload := `[
		{"mint":"raw","amount":1500000000,"decimals":9},
		{"mint":"human","amount":0.5,"decimals":9},
		{"mint":"nodec","amount":42}
	]`
	got := NormalizePositions([]byte(payload), domain.SourceBalances)
	if len(got) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(got))
	}
	if got[0].Amount != 1.5 {
		t.Errorf("raw integer amount should divide by decimals, got %v", got[0].Amount)
	}
	if got[0].RawAmount != 1500000000 {
		t.Errorf("raw amount should be preserved, got %v", got[0].RawAmount)
	}
	if got[1].Amount != 0.5 {
		t.Errorf("amounts at or below 1 should stay as-is, got %v", got[1].Amount)
	}
	if got[2].Amount != 42 {
		t.Errorf("missing decimals should not divide, got %v", got[2].Amount)
	}
}

func TestNormalizeBalancesDedupLastWins(t *testing.T) {
	payload := `[
		{"mint":"m1","amount":5,"symbol":"OLD"},
		{"mint":"m2","amount":2},
		{"mint":"m1","amount":9,"symbol":"NEW"}
	]`
	got := NormalizePositions([]byte(payload), domain.SourceBalances)
	if len(got) != 2 {
		t.Fatalf("expected 2 positions after dedup, got %d", len(got))
	}
	if got[0].Mint != "m1" || got[1].Mint != "m2" {
		t.Errorf("dedup should keep first-seen order, got %+v", got)
	}
	if got[0].Amount != 9 || got[0].Symbol != "NEW" {
		t.Errorf("later duplicate should replace values, got %+v", got[0])
	}
}

func TestNormalizeGarbageInput(t *testing.T) {
	for _, payload := range [][]byte{nil, {}, []byte("not json"), []byte(`"just a string"`), []byte(`{"unrelated":true}`)} {
		if got := NormalizePositions(payload, domain.SourceBalances); len(got) != 0 {
			t.Errorf("expected empty result for %q, got %+v", payload, got)
		}
		if got := NormalizePositions(payload, domain.SourcePnL); len(got) != 0 {
			t.Errorf("expected empty pnl result for %q, got %+v", payload, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	payload := []byte(`{"tokens":[{"mint":"m1","amount":1500000000,"decimals":9},{"mint":"m2","balance":3}]}`)
	first := NormalizePositions(payload, domain.SourceBalances)
	second := NormalizePositions(payload, domain.SourceBalances)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization is not deterministic: %+v vs %+v", first, second)
	}
}

func TestNormalizePnLOpenAndClosed(t *testing.T) {
	payload := `{
		"open":[{"mint":"m1","symbol":"AAA","amount":4,"pnl":12.5,"pnlPercentage":30}],
		"closed":[{"mint":"m2","symbol":"BBB","pnl":-2,"pnlPercentage":-10}]
	}`
	got := NormalizePositions([]byte(payload), domain.SourcePnL)
	if len(got) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got))
	}

	open := got[0]
	if open.Status != domain.StatusHolding || open.Amount != 4 {
		t.Errorf("unexpected open position %+v", open)
	}
	if open.PnL == nil || *open.PnL != 12.5 {
		t.Errorf("expected open pnl 12.5, got %v", open.PnL)
	}
	if open.PnLPct == nil || *open.PnLPct != 30 {
		t.Errorf("expected open pnl pct 30, got %v", open.PnLPct)
	}

	closed := got[1]
	if closed.Status != domain.StatusSold || closed.Amount != 0 {
		t.Errorf("unexpected closed position %+v", closed)
	}
	if closed.PnL == nil || *closed.PnL != -2 {
		t.Errorf("expected closed pnl -2, got %v", closed.PnL)
	}
}

func TestNormalizePnLDataEnvelope(t *testing.T) {
	payload := `{"data":{"open":[{"address":"m1","unrealized":5,"percent":8}],"closed":[{"address":"m2","realized":-1}]}}`
	got := NormalizePositions([]byte(payload), domain.SourcePnL)
	if len(got) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got))
	}
	if got[0].PnL == nil || *got[0].PnL != 5 {
		t.Errorf("expected unrealized alias for open pnl, got %v", got[0].PnL)
	}
	if got[0].PnLPct == nil || *got[0].PnLPct != 8 {
		t.Errorf("expected percent alias for pnl pct, got %v", got[0].PnLPct)
	}
	if got[1].PnL == nil || *got[1].PnL != -1 {
		t.Errorf("expected realized alias for closed pnl, got %v", got[1].PnL)
	}
}

func TestNormalizePnLClosedOverridesOpen(t *testing.T) {
	// Same mint in both lists: the closed record, processed second, wins.
	payload := `{"open":[{"mint":"m1","amount":4}],"closed":[{"mint":"m1","pnl":3}]}`
	got := NormalizePositions([]byte(payload), domain.SourcePnL)
	if len(got) != 1 {
		t.Fatalf("expected 1 position, got %d", len(got))
	}
	if got[0].Status != domain.StatusSold {
		t.Errorf("expected closed record to win, got %+v", got[0])
	}
}
