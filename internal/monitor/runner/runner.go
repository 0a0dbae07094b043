package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"upbitmonitor/config"
	"upbitmonitor/internal/monitor/report"
	"upbitmonitor/internal/monitor/scanner"
	"upbitmonitor/internal/monitor/snapshot"

	"github.com/nightlyone/lockfile"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier delivers a text message to a chat. Send failures are reported
// as errors; the runner downgrades them to log entries.
type Notifier interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

// Runner executes one full monitor invocation: scan the market for new
// risers, persist them into the window snapshot, and flush the report when
// the window boundary has been crossed.
type Runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	market   scanner.MarketData
	notifier Notifier
	store    *snapshot.Store

	// Now is the clock used for the report trigger; overridable in tests.
	Now func() time.Time
}

func New(cfg *config.Config, logger *zap.Logger, market scanner.MarketData, notifier Notifier) *Runner {
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		market:   market,
		notifier: notifier,
		store:    snapshot.NewStore(cfg.Monitor.SnapshotFile, logger),
		Now:      time.Now,
	}
}

// Run performs a single invocation. Scan and notification failures are
// logged and absorbed so the scheduled job always completes; only the
// stages below decide what still makes sense to do after a failure.
func (r *Runner) Run(ctx context.Context) error {
	unlock, ok := r.acquireLock()
	if !ok {
		return nil
	}
	defer unlock()

	r.maybeSendWelcome(ctx)
	r.runScan(ctx)
	r.runReport(ctx)

	return nil
}

// acquireLock takes the PID lock file guarding against overlapping
// scheduler invocations. A held lock skips this invocation cleanly; any
// other lock problem is logged and ignored rather than blocking the scan.
func (r *Runner) acquireLock() (unlock func(), ok bool) {
	lockPath, err := filepath.Abs(r.cfg.Monitor.LockFile)
	if err != nil {
		r.logger.Warn("could not resolve lock file path, continuing unlocked", zap.Error(err))
		return func() {}, true
	}

	flock, err := lockfile.New(lockPath)
	if err != nil {
		r.logger.Warn("could not create lock file, continuing unlocked",
			zap.String("path", lockPath), zap.Error(err))
		return func() {}, true
	}

	if err := flock.TryLock(); err != nil {
		if errors.Is(err, lockfile.ErrBusy) {
			r.logger.Warn("another invocation holds the lock, skipping this run",
				zap.String("path", lockPath))
			return nil, false
		}
		r.logger.Warn("could not acquire lock, continuing unlocked",
			zap.String("path", lockPath), zap.Error(err))
		return func() {}, true
	}

	return func() {
		if err := flock.Unlock(); err != nil {
			r.logger.Warn("failed to release lock", zap.Error(err))
		}
	}, true
}

// maybeSendWelcome sends a one-time greeting on the very first invocation
// and drops a marker file so it never repeats. Best effort: a failed send
// still creates the marker.
func (r *Runner) maybeSendWelcome(ctx context.Context) {
	markerPath := r.cfg.Monitor.FirstRunFile
	if _, err := os.Stat(markerPath); err == nil {
		return
	} else if !os.IsNotExist(err) {
		r.logger.Warn("could not check first-run marker", zap.String("path", markerPath), zap.Error(err))
		return
	}

	r.logger.Info("first invocation detected, sending welcome message")
	r.send(ctx, report.Welcome())

	if err := os.WriteFile(markerPath, []byte("done"), 0644); err != nil {
		r.logger.Error("failed to create first-run marker", zap.String("path", markerPath), zap.Error(err))
	}
}

// runScan loads the previous snapshot, scans the market and persists the
// union when anything new was detected. A scan failure is logged and
// alerted but never stops the reporting stage.
func (r *Runner) runScan(ctx context.Context) {
	prev := r.store.Load()

	current, newly, err := scanner.New(r.market, r.cfg.Monitor.QuoteCurrency, r.cfg.Monitor.RiseThreshold, r.logger).
		Scan(ctx, prev)
	if err != nil {
		r.logger.Error("ticker scan failed", zap.Error(err))
		r.send(ctx, report.FormatScanAlert(err))
		return
	}

	if len(newly) == 0 {
		r.logger.Info("no new risers this scan")
		return
	}

	r.logger.Info("persisting new risers",
		zap.Int("new", len(newly)),
		zap.Int("total", len(current)),
		zap.Strings("symbols", newly))
	r.store.Save(current)
}

// runReport flushes the accumulated snapshot as a report when the current
// invocation lands inside the reporting window. The snapshot is reset as
// soon as a report is composed, regardless of whether the send succeeded:
// the next window starts fresh and a lost report is never re-sent.
func (r *Runner) runReport(ctx context.Context) {
	now := r.Now()
	if !report.Due(now, r.cfg.Monitor.ReportCutoffMinute) {
		return
	}

	snap := r.store.Load()
	if len(snap) == 0 {
		r.logger.Info("report window reached but no risers were recorded, skipping report",
			zap.Int("hour", now.Hour()))
		return
	}

	r.logger.Info("report window reached, sending report",
		zap.Int("hour", now.Hour()), zap.Int("symbols", len(snap)))

	threshold := decimal.NewFromFloat(r.cfg.Monitor.RiseThreshold)
	r.send(ctx, report.Format(now.Hour(), threshold, snap))

	r.logger.Info("resetting snapshot for the next window")
	r.store.Save(map[string]struct{}{})
}

// send delivers a message to the configured chat, logging and discarding
// any failure. The next scheduled invocation is the only retry mechanism.
func (r *Runner) send(ctx context.Context, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, r.cfg.Telegram.Timeout)
	defer cancel()

	if err := r.notifier.SendMessage(sendCtx, r.cfg.Telegram.ChatID, text); err != nil {
		r.logger.Error("failed to send telegram message", zap.Error(err))
		return
	}
	r.logger.Info("telegram message sent")
}
