package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"pagos/internal/card"
	"pagos/internal/checkout"
	"pagos/internal/models"
	"pagos/internal/notify"
	"pagos/internal/session"
)

type CheckoutHandler struct {
	client  checkout.PaymentClient
	store   *session.Store
	notices *notify.Center

	mu    sync.Mutex
	flows map[string]*checkout.Flow
	now   func() time.Time
}

func NewCheckoutHandler(client checkout.PaymentClient, store *session.Store, notices *notify.Center) *CheckoutHandler {
	return &CheckoutHandler{
		client:  client,
		store:   store,
		notices: notices,
		flows:   make(map[string]*checkout.Flow),
		now:     time.Now,
	}
}

// flow returns the in-memory checkout flow for the payment, fetching the
// payment on first visit. Flows (and any validated card data inside them)
// live only as long as the process.
func (h *CheckoutHandler) flow(c *gin.Context, id string) (*checkout.Flow, error) {
	h.mu.Lock()
	f, ok := h.flows[id]
	h.mu.Unlock()
	if ok {
		return f, nil
	}
	f, err := checkout.Load(c.Request.Context(), h.client, id)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.flows[id] = f
	h.mu.Unlock()
	return f, nil
}

func (h *CheckoutHandler) drop(id string) {
	h.mu.Lock()
	delete(h.flows, id)
	h.mu.Unlock()
}

// cardForm mirrors the card modal's fields for re-rendering.
type cardForm struct {
	Kind    string
	Number  string
	Name    string
	Exp     string
	DocType string
	Doc     string
}

func (h *CheckoutHandler) render(c *gin.Context, f *checkout.Flow, form cardForm) {
	if form.Kind == "" {
		form.Kind = models.MethodCreditCard
	}
	if form.DocType == "" {
		form.DocType = models.DocDNI
	}
	sess, _ := h.store.Current()
	c.HTML(http.StatusOK, "checkout", gin.H{
		"Session":        sess,
		"Notices":        h.notices.Active(),
		"Payment":        f.Payment(),
		"CardMask":       f.CardMask(),
		"WalletSelected": f.CardMask() == "" && f.Ready(),
		"Ready":          f.Ready(),
		"Processing":     false,
		"Form":           form,
		"DocumentTypes":  card.DocumentTypes(),
	})
}

func (h *CheckoutHandler) Show(c *gin.Context) {
	f, err := h.flow(c, c.Param("id"))
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		c.Redirect(http.StatusFound, "/payments")
		return
	}
	h.render(c, f, cardForm{})
}

// SelectWallet chooses the MERCADO_PAGO method.
func (h *CheckoutHandler) SelectWallet(c *gin.Context) {
	id := c.Param("id")
	f, err := h.flow(c, id)
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		c.Redirect(http.StatusFound, "/payments")
		return
	}
	f.SelectWallet()
	h.notices.Push(notify.Info, "Billetera seleccionada.")
	c.Redirect(http.StatusFound, "/payments/"+id+"/checkout")
}

// SubmitCard validates the card form. An invalid form surfaces the first
// field error, keeps the modal state and stores nothing; a valid one projects
// the card data into the flow and shows the masked number.
func (h *CheckoutHandler) SubmitCard(c *gin.Context) {
	id := c.Param("id")
	f, err := h.flow(c, id)
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		c.Redirect(http.StatusFound, "/payments")
		return
	}

	form := cardForm{
		Kind:    c.PostForm("kind"),
		Number:  c.PostForm("number"),
		Name:    c.PostForm("name"),
		Exp:     c.PostForm("exp"),
		DocType: c.PostForm("doc_type"),
		Doc:     c.PostForm("doc"),
	}
	if form.Kind != models.MethodDebitCard {
		form.Kind = models.MethodCreditCard
	}

	cf := card.Form{
		Number:         form.Number,
		HolderName:     form.Name,
		Expiry:         form.Exp,
		CVV:            c.PostForm("cvv"),
		DocumentType:   form.DocType,
		DocumentNumber: form.Doc,
	}
	data, err := cf.CardData(form.Kind, h.now())
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		h.render(c, f, form)
		return
	}
	f.SelectCard(data)
	h.notices.Push(notify.Success, "Tarjeta cargada: "+card.Mask(data.Number))
	c.Redirect(http.StatusFound, "/payments/"+id+"/checkout")
}

// Purchase runs the three-step transition. Success navigates back to the
// payments list; every failure becomes a notice and keeps the checkout view.
func (h *CheckoutHandler) Purchase(c *gin.Context) {
	id := c.Param("id")
	f, err := h.flow(c, id)
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		c.Redirect(http.StatusFound, "/payments")
		return
	}

	p, err := f.Purchase(c.Request.Context())
	if err != nil {
		h.notices.Push(notify.Error, err.Error())
		c.Redirect(http.StatusFound, "/payments/"+id+"/checkout")
		return
	}
	h.drop(id)
	h.notices.Push(notify.Success, "Pago "+p.Status+".")
	c.Redirect(http.StatusFound, "/payments")
}
