package cmd

import (
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/document"
	"catalog-sync/core/logger"
	"catalog-sync/core/record"
	"catalog-sync/core/storage"
	"catalog-sync/core/tsv"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/spreadsheet"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	schema record.Schema
	parser *tsv.Parser
	store  document.Store
	client storage.Client
}

// loadEnv reads the configuration and builds the logger, parser and store.
func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	schema, err := cfg.Catalog.Schema()
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		log:    l,
		schema: schema,
		parser: tsv.NewParser(schema,
			tsv.WithMarkerID(cfg.Catalog.MarkerID),
			tsv.WithSampleRows(cfg.Catalog.SampleRows)),
		store: document.NewFileStore(),
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		e.client = client
		e.store = document.NewObjectStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix, logger.Named(l, "store"))
	}
	return e, nil
}

// connectDB opens the inventory database. The returned close func is never nil.
func (e *env) connectDB() (*gorm.DB, func(), error) {
	db, err := database.Connect(e.cfg.Database)
	if err != nil {
		return nil, func() {}, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

func (e *env) sheetOptions() spreadsheet.Options {
	opts := spreadsheet.Options{
		Sheet:     e.cfg.Spreadsheet.Sheet,
		HeaderRow: e.cfg.Spreadsheet.HeaderRow,
	}
	if d := []rune(e.cfg.Spreadsheet.Delimiter); len(d) > 0 {
		opts.Delimiter = d[0]
	}
	return opts
}

func (e *env) profile() inventory.Profile {
	return inventory.DefaultProfile(e.cfg.Database.Table)
}

// catalogService builds the catalog service for the configured page.
func (e *env) catalogService(name string) *catalog.Service {
	if name == "" {
		name = e.cfg.Catalog.Document
	}
	keep := 0
	if e.cfg.Storage.Enabled {
		keep = e.cfg.Storage.KeepBackups
	}
	return catalog.NewService(e.store, e.parser, nil, catalog.Settings{
		Document:     name,
		FormatPrices: e.cfg.Catalog.FormatPrices,
		Backup:       e.cfg.Catalog.Backup,
		KeepBackups:  keep,
		Sheet:        e.sheetOptions(),
	}, logger.Named(e.log, "catalog"))
}
