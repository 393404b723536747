package payments

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"pagos/internal/models"
)

// Filter narrows a payment list client-side: case-insensitive substring match
// on the counterparty, method/status equality and created-at range inclusion.
// Zero values leave the corresponding dimension unfiltered.
type Filter struct {
	Search   string
	Method   string
	Statuses []string
	From     time.Time
	To       time.Time
}

func (f Filter) matches(p models.Payment) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Counterparty), strings.ToLower(f.Search)) {
		return false
	}
	if f.Method != "" && p.Method != f.Method {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if p.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && p.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && p.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// Apply returns the payments passing the filter, in input order.
func (f Filter) Apply(in []models.Payment) []models.Payment {
	out := make([]models.Payment, 0, len(in))
	for _, p := range in {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort keys.
const (
	SortDate   = "date"
	SortAmount = "amount"
)

// Sort orders payments by date or total amount, stable in either direction.
func Sort(in []models.Payment, key string, desc bool) {
	less := func(a, b models.Payment) bool { return a.CreatedAt.Before(b.CreatedAt) }
	if key == SortAmount {
		less = func(a, b models.Payment) bool { return a.Total() < b.Total() }
	}
	sort.SliceStable(in, func(i, j int) bool {
		if desc {
			return less(in[j], in[i])
		}
		return less(in[i], in[j])
	})
}

// WriteCSV exports the given (already filtered and sorted) payments.
func WriteCSV(w io.Writer, in []models.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "fecha", "contraparte", "medio", "estado", "moneda", "subtotal", "impuestos", "comisiones", "total"}); err != nil {
		return err
	}
	for _, p := range in {
		row := []string{
			p.ID,
			p.CreatedAt.Format("2006-01-02"),
			p.Counterparty,
			p.Method,
			p.Status,
			p.Currency,
			fmt.Sprintf("%.2f", p.AmountSubtotal),
			fmt.Sprintf("%.2f", p.Taxes),
			fmt.Sprintf("%.2f", p.Fees),
			fmt.Sprintf("%.2f", p.Total()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
