package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository reads the product catalog from PostgreSQL using GORM.
// The API loads it once at startup; the seeder writes it with Upsert.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps a catalog product to a relational row. Position keeps
// the storefront display order independent of id.
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

// List returns all products in display order.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Upsert inserts or refreshes products, recording slice order as display order.
func (r *Repository) Upsert(ctx context.Context, products []*domain.Product) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	records := make([]productRecord, 0, len(products))
	for i, product := range products {
		if product == nil {
			continue
		}
		if err := product.Validate(); err != nil {
			return err
		}
		records = append(records, toRecord(product, i))
	}
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"position":    gorm.Expr("EXCLUDED.position"),
				"name":        gorm.Expr("EXCLUDED.name"),
				"price":       gorm.Expr("EXCLUDED.price"),
				"description": gorm.Expr("EXCLUDED.description"),
				"image":       gorm.Expr("EXCLUDED.image"),
				"category":    gorm.Expr("EXCLUDED.category"),
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&records).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product, position int) productRecord {
	return productRecord{
		ID:          product.ID,
		Position:    position,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Image:       product.Image,
		Category:    product.Category,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
	}
}
