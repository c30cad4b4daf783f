// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or sqlite connections from the application's
// configuration. The inventory products table is read through this
// connection and checked by the integrity feature.
//
// # Connect
//
// Connect builds the MySQL DSN (with connection and I/O timeouts) or opens a
// sqlite file, tunes the pool and pings the server before returning.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (SHOW COLUMNS on MySQL, PRAGMA
// table_info on sqlite); MissingColumns compares them with what a model
// expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "products", []string{"code", "name"})
package database
