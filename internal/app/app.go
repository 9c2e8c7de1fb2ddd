// Package app wires the generator to the sink adapter and owns the
// process lifecycle: the tick loop, signal handling, and the shutdown
// summary.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kwalsh/wxsim/internal/config"
	"github.com/kwalsh/wxsim/internal/generator"
	"github.com/kwalsh/wxsim/internal/log"
	"github.com/kwalsh/wxsim/internal/status"
	"github.com/kwalsh/wxsim/internal/storage"
	"github.com/kwalsh/wxsim/internal/storage/timescaledb"
)

// App represents the main application
type App struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	runID  string
}

// New creates a new application instance
func New(cfg *config.Config, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		runID:  uuid.NewString(),
	}
}

// Run starts the generate/persist loop and blocks until shutdown. The
// database connection is released on every exit path.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Infof("weather station simulator starting, run id %s", a.runID)
	log.Infof("database %s:%d/%s, generation interval %v",
		a.cfg.DBHost, a.cfg.DBPort, a.cfg.DBName, a.cfg.Interval)

	store, attempts, err := timescaledb.New(ctx, a.cfg)
	if err != nil {
		if errors.Is(err, storage.ErrConnectionExhausted) {
			log.Errorf("giving up on database after %d attempts", attempts)
		}
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warnf("error closing database connection: %v", cerr)
			return
		}
		log.Info("database connection closed")
	}()

	var stat *status.Server
	if a.cfg.StatusAddr != "" {
		stat = status.NewServer(a.cfg.StatusAddr, a.runID)
		stat.Start(ctx, &wg)
	}

	gen := generator.New()

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	var records int64
	for {
		select {
		case <-sigs:
			log.Info("shutdown signal received, initiating graceful shutdown...")
			return a.shutdown(cancel, &wg, records)
		case <-ctx.Done():
			log.Info("context cancelled, shutting down...")
			return a.shutdown(cancel, &wg, records)
		case <-ticker.C:
			reading := gen.Generate()
			rec, err := store.StoreReading(ctx, reading)
			if err != nil {
				// Per-tick write failures are not retried; skip the tick.
				log.Errorf("persist failed, skipping tick: %v", err)
				if stat != nil {
					stat.RecordError(err)
				}
				continue
			}

			records++
			log.Infof("[%s] id:%d %+.1f°C | %.1f%% | %.1f hPa | %.1f m/s %s | %s",
				rec.Timestamp.Format("2006-01-02 15:04:05"), rec.ID,
				reading.Temperature, reading.Humidity, reading.Pressure,
				reading.WindSpeed, reading.WindDirection, reading.WeatherCondition)

			if stat != nil {
				stat.RecordPersisted(reading, records)
			}
			if records%60 == 0 {
				log.Infof("statistics: %d records generated", records)
			}
		}
	}
}

// shutdown stops the workers and reports the final record count.
func (a *App) shutdown(cancel context.CancelFunc, wg *sync.WaitGroup, records int64) error {
	cancel()
	wg.Wait()
	log.Infof("simulator stopped, %d records generated in total", records)
	return nil
}
