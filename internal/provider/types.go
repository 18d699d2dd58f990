package provider

// TrendingToken is one entry of the trending-token listing.
type TrendingToken struct {
	Mint         string
	Symbol       string
	LiquidityUSD float64
	Volume24h    float64
}

// TraderRank is one entry of a ranked trader listing, either global or
// scoped to a single token.
type TraderRank struct {
	Wallet string
	PnL    float64
}

// HolderRef identifies one holder of a token.
type HolderRef struct {
	Wallet string
}
