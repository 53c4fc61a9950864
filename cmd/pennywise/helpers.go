package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/engine"
	"github.com/pennywise/pennywise/internal/learning"
	"github.com/pennywise/pennywise/internal/merchant"
	"github.com/pennywise/pennywise/internal/rules"
	"github.com/pennywise/pennywise/internal/storage"
)

// openStorage opens the configured database and runs migrations.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "pennywise", "pennywise.db")
	}

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// engineConfig builds the categorizer config, applying viper overrides on
// top of the defaults.
func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if viper.IsSet("engine.auto_apply_threshold") {
		cfg.AutoApplyThreshold = viper.GetFloat64("engine.auto_apply_threshold")
	}
	if viper.IsSet("engine.chunk_size") {
		cfg.ChunkSize = viper.GetInt("engine.chunk_size")
	}
	if viper.IsSet("engine.workers") {
		cfg.Workers = viper.GetInt("engine.workers")
	}
	return cfg
}

// learningConfig builds the learning config, applying viper overrides.
func learningConfig() learning.Config {
	cfg := learning.DefaultConfig()
	if viper.IsSet("learning.max_ledger_entries") {
		cfg.MaxLedgerEntries = viper.GetInt("learning.max_ledger_entries")
	}
	if viper.IsSet("learning.min_occurrences") {
		cfg.MinOccurrences = viper.GetInt("learning.min_occurrences")
	}
	if viper.IsSet("learning.min_confidence") {
		cfg.MinConfidence = viper.GetFloat64("learning.min_confidence")
	}
	if viper.IsSet("learning.max_pattern_age_days") {
		cfg.MaxPatternAge = time.Duration(viper.GetInt("learning.max_pattern_age_days")) * 24 * time.Hour
	}
	return cfg
}

// merchantTable returns the curated merchant table: the compiled-in
// defaults, with any user entries from the config file checked first.
func merchantTable() []merchant.Entry {
	var extra []merchant.Entry
	if err := viper.UnmarshalKey("merchant.table", &extra); err != nil {
		common.LogWarn("ignoring malformed merchant table in config",
			common.Fields{"error": err.Error()})
		return merchant.DefaultTable()
	}
	return append(extra, merchant.DefaultTable()...)
}

// buildServices constructs the engine's wired service graph over an open
// database.
type services struct {
	store      *rules.Store
	ledger     *learning.Ledger
	aggregator *learning.Aggregator
	suggester  *learning.Suggester
	feedback   *engine.Feedback
	categorize *engine.Categorizer
}

func buildServices(ctx context.Context, db *storage.SQLiteStorage) *services {
	learnCfg := learningConfig()

	store := rules.NewStore(ctx, db, rules.DefaultStoreConfig())
	ledger := learning.NewLedger(ctx, db, learnCfg.MaxLedgerEntries)
	aggregator := learning.NewAggregator(ctx, db, learnCfg)
	suggester := learning.NewSuggester(aggregator, store, learnCfg)
	lookup := merchant.NewLookup(merchantTable())

	return &services{
		store:      store,
		ledger:     ledger,
		aggregator: aggregator,
		suggester:  suggester,
		feedback:   engine.NewFeedback(ledger, aggregator, store),
		categorize: engine.New(store, lookup, db, engineConfig()),
	}
}
