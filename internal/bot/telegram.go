package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/skuubrain/Solscanner/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// ScanEngine is the slice of the tracker engine the bot commands need.
type ScanEngine interface {
	Run(ctx context.Context, params domain.ScanParams) (domain.ScanResult, error)
	TrackedWallets() []domain.WalletRecord
	FlaggedTokens(ctx context.Context) []domain.ConsensusEntry
}

func StartTelegramBot(engine ScanEngine) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/flagged", func(c tele.Context) error {
		flagged := engine.FlaggedTokens(context.Background())
		if len(flagged) == 0 {
			return c.Send("No flagged tokens yet. Run /scan first.")
		}
		return c.Send(formatFlagged(flagged))
	})

	b.Handle("/wallets", func(c tele.Context) error {
		wallets := engine.TrackedWallets()
		if len(wallets) == 0 {
			return c.Send("No wallets tracked yet. Run /scan first.")
		}
		return c.Send(formatWallets(wallets))
	})

	b.Handle("/scan", func(c tele.Context) error {
		if err := c.Send("Scanning, this can take a minute..."); err != nil {
			return err
		}
		result, err := engine.Run(context.Background(), domain.ScanParams{})
		if err != nil {
			return c.Send(fmt.Sprintf("Scan failed: %v", err))
		}
		msg := fmt.Sprintf(
			"Scan complete\nDiscovered: %d\nScanned: %d\nSkipped: %d\nFlagged tokens: %d",
			result.Discovered, result.Scanned, result.Skipped, len(result.Flagged),
		)
		if len(result.Flagged) > 0 {
			msg += "\n\n" + formatFlagged(result.Flagged)
		}
		return c.Send(msg)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatFlagged(entries []domain.ConsensusEntry) string {
	var sb strings.Builder
	sb.WriteString("Tokens held by multiple tracked wallets:\n")
	for i, e := range entries {
		if i >= 10 {
			sb.WriteString(fmt.Sprintf("...and %d more", len(entries)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("%s (%s): %d holders, avg %.4f\n", e.Symbol, shortMint(e.Mint), e.HolderCount, e.AvgAmount))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatWallets(records []domain.WalletRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tracking %d wallets:\n", len(records)))
	for i, r := range records {
		if i >= 10 {
			sb.WriteString(fmt.Sprintf("...and %d more", len(records)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("%s: %d positions, %s\n", shortMint(r.Wallet), len(r.Latest.Positions), r.Delta))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func shortMint(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}
