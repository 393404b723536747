package payments

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagos/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.July, d, 10, 0, 0, 0, time.UTC)
}

func sample() []models.Payment {
	return []models.Payment{
		{ID: "p1", Counterparty: "Ferretería El Tornillo", Method: models.MethodCreditCard, Status: models.StatusApproved, Currency: "ARS", AmountSubtotal: 100, Taxes: 21, CreatedAt: day(1)},
		{ID: "p2", Counterparty: "Librería Central", Method: models.MethodMercadoPago, Status: models.StatusPendingPayment, Currency: "ARS", AmountTotal: 50, CreatedAt: day(10)},
		{ID: "p3", Counterparty: "El Tornillo Feliz", Method: models.MethodDebitCard, Status: models.StatusRejected, Currency: "ARS", AmountTotal: 300, CreatedAt: day(20)},
	}
}

func ids(in []models.Payment) []string {
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = p.ID
	}
	return out
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter{Search: "tornillo"}.Apply(sample())
	require.Equal(t, []string{"p1", "p3"}, ids(got))

	require.Empty(t, Filter{Search: "zapatería"}.Apply(sample()))
}

func TestFilterMethodAndStatus(t *testing.T) {
	got := Filter{Method: models.MethodMercadoPago}.Apply(sample())
	require.Equal(t, []string{"p2"}, ids(got))

	got = Filter{Statuses: []string{models.StatusApproved, models.StatusRejected}}.Apply(sample())
	require.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestFilterDateRange(t *testing.T) {
	got := Filter{From: day(5), To: day(15)}.Apply(sample())
	require.Equal(t, []string{"p2"}, ids(got))

	// Open-ended bounds.
	got = Filter{From: day(5)}.Apply(sample())
	require.Equal(t, []string{"p2", "p3"}, ids(got))
}

func TestSortByDateAndAmount(t *testing.T) {
	list := sample()
	Sort(list, SortDate, true)
	require.Equal(t, []string{"p3", "p2", "p1"}, ids(list))

	list = sample()
	Sort(list, SortAmount, false)
	// p2 total 50, p1 total 121 (subtotal+taxes fallback), p3 total 300.
	require.Equal(t, []string{"p2", "p1", "p3"}, ids(list))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()[:1]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,fecha,contraparte,medio,estado,moneda,subtotal,impuestos,comisiones,total", lines[0])
	require.Equal(t, "p1,2026-07-01,Ferretería El Tornillo,CREDIT_CARD,APPROVED,ARS,100.00,21.00,0.00,121.00", lines[1])
}
