package invoice

import (
	"fmt"
	"html/template"
	"io"

	"pagos/internal/models"
)

// Kind of generated document.
const (
	KindInvoice    = "FACTURA"
	KindCreditNote = "NOTA DE CRÉDITO"
)

var tmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Kind}} {{.Payment.InvoiceNumber}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.2rem; border-bottom: 2px solid #222; padding-bottom: .5rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
td, th { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
.total { font-weight: bold; }
.fiscal { color: #555; font-size: .9rem; margin-top: .5rem; }
</style>
</head>
<body>
<h1>{{.Kind}} {{if .Payment.InvoiceType}}{{.Payment.InvoiceType}} {{end}}{{.Payment.InvoiceNumber}}</h1>
<p>Pago {{.Payment.ID}} — {{.Payment.Counterparty}}</p>
<p class="fiscal">{{if .Payment.CUIT}}CUIT: {{.Payment.CUIT}} — {{end}}Fecha: {{.Payment.CreatedAt.Format "02/01/2006"}}</p>
<table>
<tr><th>Concepto</th><th>Importe ({{.Payment.Currency}})</th></tr>
<tr><td>Subtotal</td><td>{{printf "%.2f" .Payment.AmountSubtotal}}</td></tr>
<tr><td>Impuestos</td><td>{{printf "%.2f" .Payment.Taxes}}</td></tr>
<tr><td>Comisiones</td><td>{{printf "%.2f" .Payment.Fees}}</td></tr>
<tr class="total"><td>Total</td><td>{{printf "%.2f" .Total}}</td></tr>
</table>
</body>
</html>
`))

// Render writes the HTML document for the payment. kind is KindInvoice or
// KindCreditNote.
func Render(w io.Writer, kind string, p models.Payment) error {
	if kind != KindInvoice && kind != KindCreditNote {
		return fmt.Errorf("unknown document kind %q", kind)
	}
	return tmpl.Execute(w, struct {
		Kind    string
		Payment models.Payment
		Total   float64
	}{Kind: kind, Payment: p, Total: p.Total()})
}
