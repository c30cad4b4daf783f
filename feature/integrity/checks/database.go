package checks

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/inventory/models"

	"gorm.io/gorm"
)

// DatabaseReport strictly types the result of a products table check.
type DatabaseReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Rows           int64    `json:"rows"`
	Status         string   `json:"status"` // "ok", "error"
	Errors         []string `json:"errors"`
}

// CheckDatabase verifies the products table against the Product model,
// through the column names of the profile.
func CheckDatabase(ctx context.Context, db *gorm.DB, profile inventory.Profile) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &DatabaseReport{
		Table:          profile.Table,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}
	fail := func() {
		report.Matched = false
		report.Status = "error"
	}

	actualCols, err := database.GetTableColumns(db.WithContext(ctx), profile.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", profile.Table, err))
		fail()
		return report, nil // Partial fail
	}
	if len(actualCols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("table %s does not exist", profile.Table))
		report.MissingColumns = append(report.MissingColumns, profile.Required()...)
		fail()
		return report, nil
	}

	actualMap := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	val := reflect.TypeOf(models.Product{})
	for i := 0; i < val.NumField(); i++ {
		gormTag := val.Field(i).Tag.Get("gorm")
		logical := parseGormColumn(gormTag)
		if logical == "" {
			continue
		}
		colName := strings.ToLower(profile.Column(logical))
		if colName == "" {
			continue // not mapped
		}

		actCol, exists := actualMap[colName]
		if !exists {
			if logical == inventory.ColPosition {
				continue // optional
			}
			report.MissingColumns = append(report.MissingColumns, colName)
			fail()
			continue
		}

		// Soft check on the base type only: sizes and precision may differ.
		expType := strings.ToLower(parseGormType(gormTag))
		if expType == "" {
			continue
		}
		base := expType
		if idx := strings.Index(base, "("); idx >= 0 {
			base = base[:idx]
		}
		if !strings.Contains(actCol.Type, base) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
			fail()
		}
	}

	if len(report.MissingColumns) == 0 {
		if err := db.WithContext(ctx).Table(profile.Table).Count(&report.Rows).Error; err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to count rows: %v", err))
			fail()
		}
	}

	return report, nil
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
