package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const heliusBaseURL = "https://api.helius.xyz"

// HeliusProvider fetches per-wallet token balances from the Helius API.
type HeliusProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

func NewHeliusProvider(tracer trace.Tracer, apiKey string) *HeliusProvider {
	return &HeliusProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: heliusBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// WalletBalances returns the raw balances payload for one wallet. The token
// list shape varies by API version, so normalization happens downstream.
func (p *HeliusProvider) WalletBalances(ctx context.Context, wallet string) ([]byte, error) {
	_, span := p.tracer.Start(ctx, "helius.wallet-balances")
	defer span.End()

	if p.apiKey == "" {
		return nil, fmt.Errorf("HELIUS_API_KEY not configured")
	}

	u := p.baseURL + "/v0/addresses/" + url.PathEscape(wallet) + "/balances?api-key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("helius API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
