package tracker

import (
	"math"

	"github.com/skuubrain/Solscanner/internal/domain"
	"github.com/tidwall/gjson"
)

// Upstream wallet payloads have shipped the same logical field under several
// keys across provider versions. Each logical field resolves through one
// ordered alias list; the first present (and, for amounts, positive) alias
// wins.
var (
	mintAliases      = []string{"mint", "address", "tokenAddress"}
	amountAliases    = []string{"amount", "balance", "uiAmount"}
	symbolAliases    = []string{"symbol", "token.symbol"}
	nameAliases      = []string{"name", "token.name"}
	openPnLAliases   = []string{"pnl", "unrealized"}
	closedPnLAliases = []string{"pnl", "realized"}
	pnlPctAliases    = []string{"pnlPercentage", "percent"}
)

// NormalizePositions converts one raw wallet payload into the canonical
// position list. It never fails: nil, non-JSON, or unrecognizable payloads
// yield an empty list, and malformed numeric fields coerce to zero.
// A wallet ends up with at most one position per mint; when a mint repeats,
// the later entry's values replace the earlier one in place, keeping the
// first-seen position order.
func NormalizePositions(raw []byte, mode domain.SourceMode) []domain.TokenPosition {
	if len(raw) == 0 {
		return nil
	}
	if mode == domain.SourcePnL {
		return normalizePnL(raw)
	}
	return normalizeBalances(raw)
}

func normalizeBalances(raw []byte) []domain.TokenPosition {
	rows := resolveList(gjson.ParseBytes(raw), "tokens", "data")

	var positions []domain.TokenPosition
	index := make(map[string]int)
	for _, row := range rows {
		mint := firstString(row, mintAliases)
		if mint == "" {
			continue
		}
		amount := firstPositive(row, amountAliases)
		if amount <= 0 {
			continue
		}

		// Divide out token decimals only for raw integer amounts; values at
		// or below 1 are assumed to be human-readable already.
		decimals := row.Get("decimals").Int()
		actual := amount
		if decimals > 0 && amount > 1 {
			actual = amount / math.Pow(10, float64(decimals))
		}

		pos := domain.TokenPosition{
			Mint:      mint,
			Symbol:    stringOr(row, symbolAliases, domain.UnknownSymbol),
			Name:      stringOr(row, nameAliases, domain.UnknownName),
			Amount:    actual,
			RawAmount: amount,
		}
		if i, seen := index[mint]; seen {
			positions[i] = pos
			continue
		}
		index[mint] = len(positions)
		positions = append(positions, pos)
	}
	return positions
}

func normalizePnL(raw []byte) []domain.TokenPosition {
	root := gjson.ParseBytes(raw)

	var positions []domain.TokenPosition
	index := make(map[string]int)

	record := func(row gjson.Result, status domain.PositionStatus) {
		mint := firstString(row, mintAliases)
		if mint == "" {
			return
		}
		pos := domain.TokenPosition{
			Mint:   mint,
			Symbol: stringOr(row, symbolAliases, domain.UnknownSymbol),
			Name:   stringOr(row, nameAliases, domain.UnknownName),
			Status: status,
		}
		if status == domain.StatusHolding {
			pos.Amount = firstPositive(row, amountAliases)
			pos.RawAmount = pos.Amount
			pos.PnL = floatPtr(firstNumber(row, openPnLAliases))
		} else {
			pos.PnL = floatPtr(firstNumber(row, closedPnLAliases))
		}
		pos.PnLPct = floatPtr(firstNumber(row, pnlPctAliases))

		if i, seen := index[mint]; seen {
			positions[i] = pos
			return
		}
		index[mint] = len(positions)
		positions = append(positions, pos)
	}

	// The open and closed lists each appear either at the top level or under
	// a data envelope, independently of each other.
	for _, row := range nestedList(root, "open") {
		record(row, domain.StatusHolding)
	}
	for _, row := range nestedList(root, "closed") {
		record(row, domain.StatusSold)
	}
	return positions
}

// resolveList finds a JSON array at the document root or under one of the
// given keys, whichever matches first.
func resolveList(root gjson.Result, keys ...string) []gjson.Result {
	if root.IsArray() {
		return root.Array()
	}
	if !root.IsObject() {
		return nil
	}
	for _, key := range keys {
		if v := root.Get(key); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// nestedList finds an array under key, at the top level or inside a data
// envelope, defaulting to empty.
func nestedList(root gjson.Result, key string) []gjson.Result {
	if v := root.Get(key); v.IsArray() {
		return v.Array()
	}
	if v := root.Get("data." + key); v.IsArray() {
		return v.Array()
	}
	return nil
}

func firstString(row gjson.Result, aliases []string) string {
	for _, alias := range aliases {
		if v := row.Get(alias); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func stringOr(row gjson.Result, aliases []string, fallback string) string {
	if s := firstString(row, aliases); s != "" {
		return s
	}
	return fallback
}

// firstPositive returns the first alias value that parses strictly positive.
func firstPositive(row gjson.Result, aliases []string) float64 {
	for _, alias := range aliases {
		if v := row.Get(alias); v.Exists() && v.Float() > 0 {
			return v.Float()
		}
	}
	return 0
}

// firstNumber returns the first alias value present, coercing non-numeric
// content to zero.
func firstNumber(row gjson.Result, aliases []string) float64 {
	for _, alias := range aliases {
		if v := row.Get(alias); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

func floatPtr(v float64) *float64 {
	return &v
}
