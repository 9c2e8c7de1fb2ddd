// Package timescaledb is the sink adapter: it persists generated
// readings to a PostgreSQL/TimescaleDB weather_data table through GORM.
package timescaledb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kwalsh/wxsim/internal/config"
	"github.com/kwalsh/wxsim/internal/log"
	"github.com/kwalsh/wxsim/internal/storage"
	"github.com/kwalsh/wxsim/internal/types"
)

// Storage holds the connection to the weather database.
type Storage struct {
	DB *gorm.DB
}

// New connects to the database with the configured bounded retry policy
// and prepares the weather_data table. It returns the storage handle and
// the number of connection attempts used. On retry exhaustion the error
// wraps storage.ErrConnectionExhausted.
func New(ctx context.Context, cfg *config.Config) (*Storage, int, error) {
	gormConfig := &gorm.Config{
		Logger: newGormLogger(),
	}

	policy := storage.RetryPolicy{
		MaxAttempts: cfg.ConnectMaxRetries,
		Delay:       cfg.ConnectRetryDelay,
	}

	var db *gorm.DB
	dial := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err != nil {
			log.Warnf("database unavailable, retrying in %v: %v", policy.Delay, err)
		}
		return err
	}

	log.Info("connecting to TimescaleDB...")
	attempts, err := policy.Run(dial, time.Sleep)
	if err != nil {
		return nil, attempts, err
	}
	log.Infof("TimescaleDB connection successful on attempt %d", attempts)

	t := &Storage{DB: db}
	if err := t.createSchema(ctx); err != nil {
		return nil, attempts, err
	}
	return t, attempts, nil
}

// createSchema prepares the weather_data table and, where the extension
// is available, converts it to a hypertable.
func (t *Storage) createSchema(ctx context.Context) error {
	log.Info("creating database table...")
	if err := t.DB.WithContext(ctx).Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("could not create weather_data table: %w", err)
	}

	if err := t.DB.WithContext(ctx).Exec(createTimestampIndexSQL).Error; err != nil {
		return fmt.Errorf("could not create timestamp index: %w", err)
	}

	// The simulator also runs against plain PostgreSQL, so a missing
	// timescaledb extension is not fatal.
	if err := t.DB.WithContext(ctx).Exec(createExtensionSQL).Error; err != nil {
		log.Warnf("timescaledb extension not available, continuing with plain PostgreSQL: %v", err)
		return nil
	}
	if err := t.DB.WithContext(ctx).Exec(createHypertableSQL).Error; err != nil {
		log.Warnf("could not create hypertable, continuing with plain table: %v", err)
	}
	return nil
}

// StoreReading inserts a reading as a new weather_data row. The database
// assigns the id and timestamp; both are populated on the returned
// record. Write errors are propagated, not retried here.
func (t *Storage) StoreReading(ctx context.Context, r types.Reading) (*types.WeatherRecord, error) {
	rec := &types.WeatherRecord{
		Temperature:      r.Temperature,
		Humidity:         r.Humidity,
		Pressure:         r.Pressure,
		WindSpeed:        r.WindSpeed,
		WindDirection:    r.WindDirection,
		WeatherCondition: string(r.WeatherCondition),
	}

	if err := t.DB.WithContext(ctx).Clauses(clause.Returning{}).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("could not store reading: %w", err)
	}
	return rec, nil
}

// Close releases the underlying database connection.
func (t *Storage) Close() error {
	sqlDB, err := t.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newGormLogger bridges GORM's logging into zap.
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(log.GetZapLogger()),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
