package models

import "time"

// CachedPayment mirrors a fetched Payment in the local sqlite cache so the
// list and CSV export keep working offline.
type CachedPayment struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Currency       string    `gorm:"size:3" json:"currency"`
	AmountSubtotal float64   `json:"amount_subtotal"`
	Taxes          float64   `json:"taxes"`
	Fees           float64   `json:"fees"`
	AmountTotal    float64   `json:"amount_total"`
	Status         string    `gorm:"size:20;index" json:"status"`
	Counterparty   string    `gorm:"size:255;index" json:"counterparty"`
	Method         string    `gorm:"size:50" json:"payment_method"`
	CreatedAt      time.Time `json:"created_at"`
	FetchedAt      time.Time `gorm:"autoUpdateTime" json:"fetched_at"`
}

func (CachedPayment) TableName() string {
	return "cached_payments"
}

// CachePayment converts an API payment into its cached row.
func CachePayment(p Payment) CachedPayment {
	return CachedPayment{
		ID:             p.ID,
		Currency:       p.Currency,
		AmountSubtotal: p.AmountSubtotal,
		Taxes:          p.Taxes,
		Fees:           p.Fees,
		AmountTotal:    p.Total(),
		Status:         p.Status,
		Counterparty:   p.Counterparty,
		Method:         p.Method,
		CreatedAt:      p.CreatedAt,
	}
}

// Payment converts a cached row back to the API shape used by the views.
func (c CachedPayment) Payment() Payment {
	return Payment{
		ID:             c.ID,
		Currency:       c.Currency,
		AmountSubtotal: c.AmountSubtotal,
		Taxes:          c.Taxes,
		Fees:           c.Fees,
		AmountTotal:    c.AmountTotal,
		Status:         c.Status,
		Counterparty:   c.Counterparty,
		Method:         c.Method,
		CreatedAt:      c.CreatedAt,
	}
}
