package models

import "time"

// Payment statuses as reported by the Pagos API. Unknown values are kept
// verbatim and displayed as-is.
const (
	StatusPendingPayment = "PENDING_PAYMENT"
	StatusPending        = "PENDING"
	StatusApproved       = "APPROVED"
	StatusRejected       = "REJECTED"
	StatusRefunded       = "REFUNDED"
	StatusPartialRefund  = "PARTIAL_REFUND"
	StatusExpired        = "EXPIRED"
	StatusCancelled      = "CANCELLED"
)

// Payment method kinds accepted by the payment-method assignment endpoint.
const (
	MethodCreditCard  = "CREDIT_CARD"
	MethodDebitCard   = "DEBIT_CARD"
	MethodMercadoPago = "MERCADO_PAGO"
)

type Payment struct {
	ID             string     `json:"id"`
	Currency       string     `json:"currency"`
	AmountSubtotal float64    `json:"amount_subtotal"`
	Taxes          float64    `json:"taxes"`
	Fees           float64    `json:"fees"`
	AmountTotal    float64    `json:"amount_total"`
	Status         string     `json:"status"`
	Counterparty   string     `json:"counterparty"`
	Method         string     `json:"payment_method,omitempty"`
	CUIT           string     `json:"cuit,omitempty"`
	InvoiceType    string     `json:"invoice_type,omitempty"`
	InvoiceNumber  string     `json:"invoice_number,omitempty"`
	Refunds        []Refund   `json:"refunds,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// Total returns the payment total, falling back to subtotal+taxes+fees when
// the API omitted amount_total.
func (p Payment) Total() float64 {
	if p.AmountTotal != 0 {
		return p.AmountTotal
	}
	return p.AmountSubtotal + p.Taxes + p.Fees
}

type Refund struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// PaymentEvent is one entry of a payment's timeline.
type PaymentEvent struct {
	Type      string    `json:"type"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var eventLabels = map[string]string{
	"CREATED":          "Pago creado",
	"METHOD_ASSIGNED":  "Medio de pago asignado",
	"CONFIRMED":        "Pago confirmado",
	"APPROVED":         "Pago aprobado",
	"REJECTED":         "Pago rechazado",
	"REFUND_REQUESTED": "Reembolso solicitado",
	"REFUNDED":         "Pago reembolsado",
	"EXPIRED":          "Pago vencido",
	"CANCELLED":        "Pago cancelado",
}

// Label maps the event type to its display text, falling back to the raw type.
func (e PaymentEvent) Label() string {
	if l, ok := eventLabels[e.Type]; ok {
		return l
	}
	return e.Type
}
