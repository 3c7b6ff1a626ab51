package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/common/metrics"
)

// ExpiredFeatureClearer resets stored featured flags whose window elapsed.
type ExpiredFeatureClearer interface {
	ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error)
}

// PromotionExpiryWorker tidies stale is_featured flags. Reads never depend
// on it: an elapsed featured_until already counts as not featured.
type PromotionExpiryWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	repo     ExpiredFeatureClearer
	interval time.Duration
	// onCleared runs after a sweep that changed rows.
	onCleared func(ctx context.Context)
	log       zerolog.Logger
	now       func() time.Time
}

func NewPromotionExpiryWorker(repo ExpiredFeatureClearer, interval time.Duration, onCleared func(ctx context.Context)) *PromotionExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PromotionExpiryWorker{
		ctx:       ctx,
		cancel:    cancel,
		repo:      repo,
		interval:  interval,
		onCleared: onCleared,
		log:       logger.Component("promotion_expiry"),
		now:       time.Now,
	}
}

func (w *PromotionExpiryWorker) Start() {
	w.log.Info().Dur("interval", w.interval).Msg("Starting promotion expiry worker")
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := w.Sweep(w.ctx); err != nil {
					w.log.Error().Err(err).Msg("Promotion expiry sweep failed")
				}
			case <-w.ctx.Done():
				return
			}
		}
	}()
}

func (w *PromotionExpiryWorker) Stop() {
	w.log.Info().Msg("Stopping promotion expiry worker")
	w.cancel()
	w.wg.Wait()
	w.log.Info().Msg("Promotion expiry worker stopped")
}

// Sweep runs one pass and returns the number of rows reset.
func (w *PromotionExpiryWorker) Sweep(ctx context.Context) (int64, error) {
	n, err := w.repo.ClearExpiredFeatured(ctx, w.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.ExpiredFeaturesCleared.Add(float64(n))
		w.log.Info().Int64("cleared", n).Msg("Expired promotions cleared")
		if w.onCleared != nil {
			w.onCleared(ctx)
		}
	}
	return n, nil
}
