package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the catalog schema. Carts are in-memory and have no tables.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&productRecord{})
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Position    int             `gorm:"column:position;index"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Description string          `gorm:"column:description"`
	Image       string          `gorm:"column:image"`
	Category    string          `gorm:"column:category;type:varchar(64);index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }
