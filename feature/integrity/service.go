package integrity

import (
	"context"
	"errors"
	"path"
	"strings"

	"catalog-sync/core/document"
	"catalog-sync/core/storage"
	"catalog-sync/core/tsv"
	"catalog-sync/feature/integrity/checks"
	"catalog-sync/feature/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageDisabled is returned by storage checks without a client.
	ErrStorageDisabled = errors.New("storage check disabled: no storage client configured")
	// ErrDatabaseDisabled is returned by database checks without a connection.
	ErrDatabaseDisabled = errors.New("database check disabled: no database configured")
)

// Check statuses used in Report.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Config wires the resources the checks inspect. Client and DB are optional.
type Config struct {
	Store    document.Store
	Parser   *tsv.Parser
	Document string

	Client storage.Client
	Bucket string
	Prefix string

	DB      *gorm.DB
	Profile inventory.Profile
}

// Result is the outcome of one check in a combined report.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Report any    `json:"report,omitempty"`
}

// Report combines every check.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]Result `json:"checks"`
}

// Service handles integrity checks.
type Service struct {
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Profile.Table == "" {
		cfg.Profile = inventory.DefaultProfile("")
	}
	return &Service{cfg: cfg, logger: logger}
}

// DocumentKey returns the object key of the page in the bucket.
func (s *Service) DocumentKey() string {
	name := strings.TrimLeft(s.cfg.Document, "/")
	prefix := strings.Trim(s.cfg.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// CheckDocument parses and validates the page.
func (s *Service) CheckDocument(ctx context.Context) (*checks.DocumentReport, error) {
	return checks.CheckDocument(ctx, s.cfg.Store, s.cfg.Parser, s.cfg.Document)
}

// CheckStorage inspects the bucket and the page object.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.cfg.Client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.cfg.Client, s.cfg.Bucket, s.cfg.Prefix, s.DocumentKey())
}

// FixStorage creates the missing bucket and folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	if s.cfg.Client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStorage(ctx, s.cfg.Client, s.cfg.Bucket, s.logger, missing)
}

// CheckDatabase verifies the products table.
func (s *Service) CheckDatabase(ctx context.Context) (*checks.DatabaseReport, error) {
	if s.cfg.DB == nil {
		return nil, ErrDatabaseDisabled
	}
	return checks.CheckDatabase(ctx, s.cfg.DB, s.cfg.Profile)
}

// CheckAll runs every check. Disabled checks are reported as skipped and do
// not fail the report.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{OK: true, Checks: make(map[string]Result, 3)}
	add := func(name string, ok bool, rep any, err error) {
		var res Result
		switch {
		case errors.Is(err, ErrStorageDisabled), errors.Is(err, ErrDatabaseDisabled):
			res = Result{Status: StatusSkipped, Error: err.Error()}
		case err != nil:
			res = Result{Status: StatusError, Error: err.Error()}
			report.OK = false
		case ok:
			res = Result{Status: StatusOK, Report: rep}
		default:
			res = Result{Status: StatusFailed, Report: rep}
			report.OK = false
		}
		report.Checks[name] = res
		s.logger.Debug("Integrity check finished", zap.String("check", name), zap.String("status", res.Status))
	}

	doc, err := s.CheckDocument(ctx)
	add("document", err == nil && doc.OK(), doc, err)

	st, err := s.CheckStorage(ctx)
	add("storage", err == nil && st.OK(), st, err)

	db, err := s.CheckDatabase(ctx)
	add("database", err == nil && db.Matched, db, err)

	return report
}
