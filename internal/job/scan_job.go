package job

import (
	"context"
	"log"
	"time"

	"github.com/skuubrain/Solscanner/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type ScanRunner interface {
	Run(ctx context.Context, params domain.ScanParams) (domain.ScanResult, error)
}

// ScanJob re-runs the wallet scan on a fixed interval until its context is
// cancelled. Each cycle uses the engine's configured defaults.
type ScanJob struct {
	tracer       trace.Tracer
	runner       ScanRunner
	pollInterval time.Duration
}

func NewScanJob(tracer trace.Tracer, runner ScanRunner, pollInterval time.Duration) *ScanJob {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Minute
	}
	return &ScanJob{tracer: tracer, runner: runner, pollInterval: pollInterval}
}

// Start runs one scan immediately, then on every tick. Blocks until ctx is
// cancelled.
func (j *ScanJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Println("Scan job disabled: no runner")
		<-ctx.Done()
		return
	}

	j.runOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *ScanJob) runOnce(ctx context.Context) {
	_, span := j.tracer.Start(ctx, "scan-job.run-once")
	defer span.End()

	result, err := j.runner.Run(ctx, domain.ScanParams{})
	if err != nil {
		log.Printf("Scheduled scan error: %v", err)
		return
	}
	log.Printf(
		"Scheduled scan complete discovered=%d scanned=%d skipped=%d flagged=%d warnings=%d",
		result.Discovered,
		result.Scanned,
		result.Skipped,
		len(result.Flagged),
		len(result.Errors),
	)
}
