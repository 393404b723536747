package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pagos/internal/cache"
	"pagos/internal/models"
	"pagos/internal/notify"
	"pagos/internal/payments"
	"pagos/internal/session"
)

// PaymentsAPI is the slice of the API client the list/detail views need.
type PaymentsAPI interface {
	MyPayments(ctx context.Context) ([]models.Payment, error)
	Payment(ctx context.Context, id string) (*models.Payment, error)
	Timeline(ctx context.Context, id string) ([]models.PaymentEvent, error)
	RequestRefund(ctx context.Context, id string, amount float64, reason string) (*models.Payment, error)
}

type PaymentsHandler struct {
	client  PaymentsAPI
	repo    *cache.PaymentRepository
	store   *session.Store
	notices *notify.Center
}

func NewPaymentsHandler(client PaymentsAPI, repo *cache.PaymentRepository, store *session.Store, notices *notify.Center) *PaymentsHandler {
	return &PaymentsHandler{client: client, repo: repo, store: store, notices: notices}
}

// listQuery mirrors the list view's query parameters.
type listQuery struct {
	Search   string
	Method   string
	Statuses []string
	From     string
	To       string
	Sort     string
	Desc     bool
}

func parseListQuery(c *gin.Context) listQuery {
	return listQuery{
		Search:   c.Query("search"),
		Method:   c.Query("method"),
		Statuses: c.QueryArray("status"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Sort:     c.DefaultQuery("sort", payments.SortDate),
		Desc:     c.Query("desc") == "1",
	}
}

func (q listQuery) filter() payments.Filter {
	f := payments.Filter{
		Search:   q.Search,
		Method:   q.Method,
		Statuses: q.Statuses,
	}
	if t, err := time.Parse("2006-01-02", q.From); err == nil {
		f.From = t
	}
	if t, err := time.Parse("2006-01-02", q.To); err == nil {
		// Inclusive end of day.
		f.To = t.Add(24*time.Hour - time.Second)
	}
	return f
}

func (q listQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Method != "" {
		v.Set("method", q.Method)
	}
	for _, s := range q.Statuses {
		v.Add("status", s)
	}
	if q.From != "" {
		v.Set("from", q.From)
	}
	if q.To != "" {
		v.Set("to", q.To)
	}
	if q.Sort != payments.SortDate {
		v.Set("sort", q.Sort)
	}
	if q.Desc {
		v.Set("desc", "1")
	}
	return v
}

func (q listQuery) queryString() string {
	if s := q.values().Encode(); s != "" {
		return "?" + s
	}
	return ""
}

type statusChip struct {
	Label string
	Href  string
	On    bool
}

var chipStatuses = []string{
	models.StatusPendingPayment,
	models.StatusApproved,
	models.StatusRejected,
	models.StatusRefunded,
	models.StatusExpired,
}

func (q listQuery) chips() []statusChip {
	chips := make([]statusChip, 0, len(chipStatuses))
	for _, s := range chipStatuses {
		toggled := q
		toggled.Statuses = nil
		on := false
		for _, cur := range q.Statuses {
			if cur == s {
				on = true
			} else {
				toggled.Statuses = append(toggled.Statuses, cur)
			}
		}
		if !on {
			toggled.Statuses = append(toggled.Statuses, s)
		}
		chips = append(chips, statusChip{Label: s, Href: "/payments" + toggled.queryString(), On: on})
	}
	return chips
}

// load fetches the caller's payments, writing through to the cache; when the
// API is unreachable it falls back to the cached rows and reports offline.
func (h *PaymentsHandler) load(ctx context.Context) ([]models.Payment, bool, error) {
	list, err := h.client.MyPayments(ctx)
	if err == nil {
		if h.repo != nil {
			// Best-effort write-through; the live list renders regardless.
			_ = h.repo.PutAll(list)
		}
		return list, false, nil
	}
	if h.repo != nil {
		if cached, cerr := h.repo.List(); cerr == nil {
			return cached, true, err
		}
	}
	return nil, false, err
}

func (h *PaymentsHandler) List(c *gin.Context) {
	q := parseListQuery(c)
	list, offline, err := h.load(c.Request.Context())
	if err != nil {
		if !offline {
			h.notices.Push(notify.Error, MsgUnexpectedError)
		} else {
			h.notices.Push(notify.Info, "Sin conexión: mostrando pagos guardados.")
		}
	}

	filtered := q.filter().Apply(list)
	payments.Sort(filtered, q.Sort, q.Desc)

	sortDate := q
	sortDate.Sort = payments.SortDate
	sortDate.Desc = q.Sort == payments.SortDate && !q.Desc
	sortAmount := q
	sortAmount.Sort = payments.SortAmount
	sortAmount.Desc = q.Sort == payments.SortAmount && !q.Desc

	c.HTML(http.StatusOK, "payments", gin.H{
		"Session":        h.currentSession(),
		"Notices":        h.notices.Active(),
		"Payments":       filtered,
		"Offline":        offline,
		"Query":          q,
		"Methods":        []string{models.MethodCreditCard, models.MethodDebitCard, models.MethodMercadoPago},
		"StatusChips":    q.chips(),
		"SortDateHref":   "/payments" + sortDate.queryString(),
		"SortAmountHref": "/payments" + sortAmount.queryString(),
		"QueryString":    q.queryString(),
	})
}

// ExportCSV streams the filtered, sorted list as a CSV download.
func (h *PaymentsHandler) ExportCSV(c *gin.Context) {
	q := parseListQuery(c)
	list, _, err := h.load(c.Request.Context())
	if err != nil && len(list) == 0 {
		c.String(http.StatusBadGateway, MsgUnexpectedError)
		return
	}
	filtered := q.filter().Apply(list)
	payments.Sort(filtered, q.Sort, q.Desc)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pagos-%s.csv", time.Now().Format("20060102")))
	if err := payments.WriteCSV(c.Writer, filtered); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// Detail renders one payment with its refunds and event timeline.
func (h *PaymentsHandler) Detail(c *gin.Context) {
	id := c.Param("id")
	p, err := h.client.Payment(c.Request.Context(), id)
	if err != nil {
		h.notices.Push(notify.Error, MsgUnexpectedError)
		c.Redirect(http.StatusFound, "/payments")
		return
	}
	timeline, err := h.client.Timeline(c.Request.Context(), id)
	if err != nil {
		h.notices.Push(notify.Error, "No se pudo cargar el historial.")
	}
	c.HTML(http.StatusOK, "payment", gin.H{
		"Session":  h.currentSession(),
		"Notices":  h.notices.Active(),
		"Payment":  p,
		"Timeline": timeline,
	})
}

// RequestRefund forwards the refund form to the API.
func (h *PaymentsHandler) RequestRefund(c *gin.Context) {
	id := c.Param("id")
	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil || amount <= 0 {
		h.notices.Push(notify.Error, "Ingresá un importe válido.")
		c.Redirect(http.StatusFound, "/payments/"+id)
		return
	}
	if _, err := h.client.RequestRefund(c.Request.Context(), id, amount, c.PostForm("reason")); err != nil {
		h.notices.Push(notify.Error, refundMessage(err))
		c.Redirect(http.StatusFound, "/payments/"+id)
		return
	}
	h.notices.Push(notify.Success, "Reembolso solicitado.")
	c.Redirect(http.StatusFound, "/payments/"+id)
}

func (h *PaymentsHandler) currentSession() models.Session {
	sess, _ := h.store.Current()
	return sess
}
