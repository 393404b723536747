package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"pagos/internal/models"
)

// Open creates (or opens) the local payments cache database.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := db.AutoMigrate(&models.CachedPayment{}); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return db, nil
}

// PaymentRepository reads and writes the cached payment rows.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Put upserts one fetched payment.
func (r *PaymentRepository) Put(p models.Payment) error {
	row := models.CachePayment(p)
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// PutAll upserts a fetched payment list; called after every successful
// my-payments fetch so offline listing stays current.
func (r *PaymentRepository) PutAll(ps []models.Payment) error {
	for _, p := range ps {
		if err := r.Put(p); err != nil {
			return err
		}
	}
	return nil
}

// List returns every cached payment, newest first.
func (r *PaymentRepository) List() ([]models.Payment, error) {
	var rows []models.CachedPayment
	if err := r.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Payment())
	}
	return out, nil
}

// Get returns one cached payment by id.
func (r *PaymentRepository) Get(id string) (*models.Payment, error) {
	var row models.CachedPayment
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	p := row.Payment()
	return &p, nil
}
