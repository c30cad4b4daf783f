package models

import (
	"strconv"

	"catalog-sync/core/record"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table.
type Product struct {
	Code      string          `gorm:"primaryKey;column:code;type:varchar(40)"`
	Name      string          `gorm:"column:name;type:varchar(255)"`
	Category  string          `gorm:"column:category;type:varchar(120)"`
	Brand     string          `gorm:"column:brand;type:varchar(120)"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(14,2);default:0"`
	Stock     *int64          `gorm:"column:stock;default:0"` // NULL reads as 0
	Position  int             `gorm:"column:position;default:0"`
}

func (Product) TableName() string {
	return "products"
}

// ToProduct returns the named view used to build table records. A price
// with more than two decimal places is a validation error.
func (p Product) ToProduct() (record.Product, error) {
	price, err := record.DecimalText(p.UnitPrice)
	if err != nil {
		return record.Product{}, &record.ValidationError{Field: "unit_price", Value: p.UnitPrice.String(), Message: "more than two decimal places"}
	}
	out := record.Product{
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		Brand:     p.Brand,
		UnitPrice: price,
	}
	out.Stock = "0"
	if p.Stock != nil {
		out.Stock = strconv.FormatInt(*p.Stock, 10)
	}
	return out, nil
}
