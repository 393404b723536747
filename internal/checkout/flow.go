package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"pagos/internal/api"
	"pagos/internal/models"
)

// PaymentClient is the subset of the API client the flow drives.
type PaymentClient interface {
	Payment(ctx context.Context, id string) (*models.Payment, error)
	RetryBalance(ctx context.Context, id string) (*models.Payment, error)
	AssignPaymentMethod(ctx context.Context, id string, sel api.MethodSelection) (*models.Payment, error)
	Confirm(ctx context.Context, id string) (*models.Payment, error)
}

var (
	// ErrPurchaseInFlight guards against re-entrant purchase attempts; the
	// processing flag is the sole concurrency control of the flow.
	ErrPurchaseInFlight = errors.New("ya hay una compra en curso")
	// ErrNoMethod blocks a purchase before any network call when no method
	// was selected.
	ErrNoMethod = errors.New("elegí un medio de pago")
	// ErrNoCardData blocks a card purchase until the card form was validated.
	ErrNoCardData = errors.New("completá los datos de la tarjeta")
	// ErrUnexpectedStatus marks a retry-balance success that did not leave
	// the payment in PENDING_PAYMENT. Fatal, never retried.
	ErrUnexpectedStatus = errors.New("el pago no quedó pendiente tras el reintento")
)

// Per-step fallback messages used when the server provided none.
const (
	fallbackRetry   = "No se pudo reintentar el pago."
	fallbackAssign  = "No se pudo asignar el medio de pago."
	fallbackConfirm = "No se pudo confirmar el pago."
)

// Flow drives one payment through method selection and the three-step
// purchase transition: ensure-pending, assign method, confirm.
type Flow struct {
	client PaymentClient

	mu         sync.Mutex
	payment    *models.Payment
	method     string
	card       *models.CardData
	processing bool
}

// New builds a flow around an already-fetched payment (the trusted
// navigation-state path; no fetch happens).
func New(client PaymentClient, payment *models.Payment) *Flow {
	return &Flow{client: client, payment: payment}
}

// Load builds a flow by fetching the payment by id. A fetch failure is
// terminal for the view.
func Load(ctx context.Context, client PaymentClient, id string) (*Flow, error) {
	p, err := client.Payment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("no se pudo cargar el pago: %w", err)
	}
	return &Flow{client: client, payment: p}, nil
}

// Payment returns the current local payment snapshot.
func (f *Flow) Payment() *models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment
}

// SelectWallet chooses the MERCADO_PAGO method; any stored card data is
// discarded.
func (f *Flow) SelectWallet() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = models.MethodMercadoPago
	f.card = nil
}

// SelectCard stores a validated card-data record and selects its method.
func (f *Flow) SelectCard(data models.CardData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = data.Kind
	card := data
	f.card = &card
}

// CardMask returns the masked display value for the stored card, or "".
func (f *Flow) CardMask() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.card == nil {
		return ""
	}
	return "•••• •••• •••• " + f.card.Number[len(f.card.Number)-4:]
}

// Ready reports whether a purchase may start: a method is selected and, for
// card methods, validated card data exists.
func (f *Flow) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readyLocked() == nil
}

func (f *Flow) readyLocked() error {
	if f.method == "" {
		return ErrNoMethod
	}
	if f.method != models.MethodMercadoPago && f.card == nil {
		return ErrNoCardData
	}
	return nil
}

// Purchase runs the ordered transition: ensure-pending (retry-balance only
// when the payment is REJECTED), assign method, confirm. Each step aborts on
// failure with the server message or its fallback; nothing is retried. On
// success the local payment is replaced with the confirmed one.
func (f *Flow) Purchase(ctx context.Context) (*models.Payment, error) {
	f.mu.Lock()
	if f.processing {
		f.mu.Unlock()
		return nil, ErrPurchaseInFlight
	}
	if err := f.readyLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.processing = true
	payment := f.payment
	method := f.method
	card := f.card
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.processing = false
		f.mu.Unlock()
	}()

	// Step 1: ensure the payment is pending. Only REJECTED triggers the
	// retry-balance transition, and that transition is itself never retried.
	if payment.Status == models.StatusRejected {
		retried, err := f.client.RetryBalance(ctx, payment.ID)
		if err != nil {
			return nil, stepError(err, fallbackRetry)
		}
		if retried.Status != models.StatusPendingPayment {
			log.Printf("[checkout] retry-balance left payment %s in %s", retried.ID, retried.Status)
			return nil, ErrUnexpectedStatus
		}
		f.replace(retried)
		payment = retried
	}

	// Step 2: assign the selected method.
	sel := api.MethodSelection{Method: method}
	if method != models.MethodMercadoPago {
		sel.Card = card
	}
	assigned, err := f.client.AssignPaymentMethod(ctx, payment.ID, sel)
	if err != nil {
		return nil, stepError(err, fallbackAssign)
	}
	f.replace(assigned)

	// Step 3: confirm.
	confirmed, err := f.client.Confirm(ctx, payment.ID)
	if err != nil {
		return nil, stepError(err, fallbackConfirm)
	}
	f.replace(confirmed)
	return confirmed, nil
}

func (f *Flow) replace(p *models.Payment) {
	if p == nil {
		return
	}
	f.mu.Lock()
	f.payment = p
	f.mu.Unlock()
}

// stepError surfaces the server-provided message when present, otherwise the
// step's generic fallback.
func stepError(err error, fallback string) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return errors.New(fallback)
}
