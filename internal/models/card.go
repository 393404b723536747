package models

// Document types accepted in the checkout card form.
const (
	DocDNI       = "DNI"
	DocCUIL      = "CUIL"
	DocCUIT      = "CUIT"
	DocPasaporte = "Pasaporte"
)

// CardData is the projection of a validated card form: exactly what the
// payment-method assignment endpoint needs. It lives in memory only, for the
// lifetime of one checkout, and is never persisted.
type CardData struct {
	Kind           string `json:"-"` // CREDIT_CARD or DEBIT_CARD
	Number         string `json:"card_number"`
	HolderName     string `json:"cardholder_name"`
	ExpMonth       int    `json:"exp_month"`
	ExpYear        int    `json:"exp_year"`
	CVV            string `json:"cvv"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Brand          string `json:"brand,omitempty"`
}
