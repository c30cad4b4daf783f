package inventory

import (
	"context"
	"fmt"
	"sort"

	"catalog-sync/core/record"
	"catalog-sync/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Source reads the authoritative table from a SQL products table.
type Source struct {
	db      *gorm.DB
	profile Profile
	logger  *zap.Logger
}

// NewSource creates a database source.
func NewSource(db *gorm.DB, profile Profile, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{db: db, profile: profile, logger: logger}
}

// Name returns the table name.
func (s *Source) Name() string {
	return s.profile.Table
}

// Load queries every product, ordered by position and then by code.
func (s *Source) Load(ctx context.Context, schema record.Schema) (*record.RecordSet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("inventory source: no database connection")
	}

	var rows []models.Product
	err := s.db.WithContext(ctx).
		Table(s.profile.Table).
		Select(s.profile.selectList()).
		Scan(&rows).Error
	if err != nil {
		return nil, record.NewIOError("query products", s.profile.Table, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return record.CompareKeys(rows[i].Code, rows[j].Code) < 0
	})

	records := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		product, err := row.ToProduct()
		if err != nil {
			return nil, fmt.Errorf("%s: product %s: %w", s.profile.Table, row.Code, err)
		}
		r := schema.FromProduct(product, i+1)
		if err := schema.ValidateValues(r.Values, i+1); err != nil {
			return nil, fmt.Errorf("%s: %w", s.profile.Table, err)
		}
		records = append(records, r)
	}

	s.logger.Debug("Loaded products", zap.String("table", s.profile.Table), zap.Int("count", len(records)))
	return record.BuildRecordSet(schema, s.Name(), records)
}
