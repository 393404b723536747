package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"pagos/internal/invoice"
	"pagos/internal/notify"
)

type InvoiceHandler struct {
	client  PaymentsAPI
	notices *notify.Center
}

func NewInvoiceHandler(client PaymentsAPI, notices *notify.Center) *InvoiceHandler {
	return &InvoiceHandler{client: client, notices: notices}
}

// Preview renders the generated invoice HTML; ?download=1 serves it as an
// attached .html blob, ?kind=credit renders the credit note.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	id := c.Param("id")
	p, err := h.client.Payment(c.Request.Context(), id)
	if err != nil {
		h.notices.Push(notify.Error, MsgUnexpectedError)
		c.Redirect(http.StatusFound, "/payments")
		return
	}

	kind := invoice.KindInvoice
	if c.Query("kind") == "credit" {
		kind = invoice.KindCreditNote
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, kind, *p); err != nil {
		h.notices.Push(notify.Error, MsgUnexpectedError)
		c.Redirect(http.StatusFound, "/payments/"+id)
		return
	}
	if c.Query("download") == "1" {
		c.Header("Content-Disposition", "attachment; filename=factura-"+id+".html")
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
