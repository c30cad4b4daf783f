package inventory

import (
	"context"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/record"
	"catalog-sync/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func setupSQLite(t *testing.T, products ...models.Product) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	for _, p := range products {
		require.NoError(t, db.Create(&p).Error)
	}
	return db
}

func stock(n int64) *int64 { return &n }

// TestSource_SQLite tests ordering and decimal rendering against a real table.
func TestSource_SQLite(t *testing.T) {
	db := setupSQLite(t,
		models.Product{Code: "10", Name: "Te", Category: "Almacen", Brand: "Taragui", UnitPrice: decimal.NewFromInt(900), Stock: stock(2)},
		models.Product{Code: "2", Name: "Yerba", Category: "Almacen", Brand: "Rosamonte", UnitPrice: decimal.RequireFromString("1500.50"), Stock: stock(5)},
		models.Product{Code: "7", Name: "Cafe", Category: "Almacen", Brand: "La Virginia", UnitPrice: decimal.NewFromInt(3000), Stock: stock(0), Position: -1},
	)

	src := NewSource(db, DefaultProfile(""), nil)
	assert.Equal(t, "products", src.Name())

	set, err := src.Load(context.Background(), record.Inventory)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "2", "10"}, set.Keys())

	r, _ := set.Get("2")
	assert.Equal(t, []string{"2", "Yerba", "Almacen", "Rosamonte", "1500.5", "5"}, r.Values)

	catalog, err := src.Load(context.Background(), record.Catalog)
	require.NoError(t, err)
	r, _ = catalog.Get("10")
	assert.Equal(t, []string{"Te", "Almacen", "Taragui", "900", "10"}, r.Values)
}

func TestSource_RejectsFinePrices(t *testing.T) {
	db := setupSQLite(t,
		models.Product{Code: "1", Name: "Clavo", Category: "Ferreteria", Brand: "Acme", UnitPrice: decimal.RequireFromString("12.345"), Stock: stock(100)},
	)

	_, err := NewSource(db, DefaultProfile(""), nil).Load(context.Background(), record.Inventory)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrValidation)
	assert.Contains(t, err.Error(), "decimal places")
}

func TestSource_CatalogRejectsTextCodes(t *testing.T) {
	db := setupSQLite(t, models.Product{Code: "A-1", Name: "Yerba", UnitPrice: decimal.NewFromInt(1), Stock: stock(1)})

	_, err := NewSource(db, DefaultProfile(""), nil).Load(context.Background(), record.Catalog)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrValidation)
}

// TestSource_MySQLProfile tests that a custom profile aliases columns.
func TestSource_MySQLProfile(t *testing.T) {
	db, mock := setupMockDB(t)

	profile := Profile{
		Table: "articulos",
		Columns: map[string]string{
			ColCode:      "codigo",
			ColName:      "descripcion",
			ColCategory:  "rubro",
			ColBrand:     "marca",
			ColUnitPrice: "precio",
			ColStock:     "existencia",
		},
	}

	rows := sqlmock.NewRows([]string{"code", "name", "category", "brand", "unit_price", "stock", "position"}).
		AddRow("B2", "Perfume", "Fragancias", "Avon", "12500.00", int64(1), int64(0)).
		AddRow("A1", "Crema", "Cuidado", "Natura", "40000.00", nil, int64(0))
	mock.ExpectQuery("SELECT `codigo` AS code, `descripcion` AS name, `rubro` AS category, `marca` AS brand, `precio` AS unit_price, `existencia` AS stock, 0 AS position FROM `articulos`").
		WillReturnRows(rows)

	set, err := NewSource(db, profile, nil).Load(context.Background(), record.Inventory)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, set.Keys())

	r, _ := set.Get("A1")
	assert.Equal(t, "40000", r.Values[4])
	assert.Equal(t, "0", r.Values[5])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `products`").WillReturnError(assert.AnError)

	_, err := NewSource(db, DefaultProfile("products"), nil).Load(context.Background(), record.Inventory)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrIO)
}

func TestSource_NoDB(t *testing.T) {
	_, err := NewSource(nil, DefaultProfile(""), nil).Load(context.Background(), record.Inventory)
	assert.Error(t, err)
}

func TestProfile_Required(t *testing.T) {
	p := DefaultProfile("stock")
	assert.Equal(t, "stock", p.Table)
	assert.Equal(t, []string{"code", "name", "category", "brand", "unit_price", "stock"}, p.Required())
}
