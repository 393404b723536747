package card

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pagos/internal/models"
)

// Field errors surfaced by Validate, in the order fields are checked.
var (
	ErrNumber   = errors.New("el número de tarjeta debe tener 16 dígitos")
	ErrHolder   = errors.New("el nombre del titular no es válido")
	ErrExpiry   = errors.New("la fecha de vencimiento no es válida")
	ErrCVV      = errors.New("el código de seguridad debe tener 3 dígitos")
	ErrDocument = errors.New("el número de documento no es válido")
)

var (
	holderRe   = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñÜü' .-]+$`)
	expiryRe   = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvRe      = regexp.MustCompile(`^\d{3}$`)
	passportRe = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)
	digitsRe   = regexp.MustCompile(`\D`)
)

// Digits strips every non-digit from s.
func Digits(s string) string {
	return digitsRe.ReplaceAllString(s, "")
}

// ValidNumber reports whether the input normalizes to exactly 16 digits.
func ValidNumber(number string) bool {
	return len(Digits(number)) == 16
}

// Format renders a card number in groups of 4 for display.
func Format(number string) string {
	d := Digits(number)
	var groups []string
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		groups = append(groups, d[i:end])
	}
	return strings.Join(groups, " ")
}

// Mask hides everything but the last 4 digits.
func Mask(number string) string {
	d := Digits(number)
	if len(d) < 4 {
		return ""
	}
	return "•••• •••• •••• " + d[len(d)-4:]
}

// ValidHolder checks the permitted character classes and the 3-60 length.
func ValidHolder(name string) bool {
	n := len([]rune(name))
	return n >= 3 && n <= 60 && holderRe.MatchString(name)
}

// ValidExpiry checks an MM/YY expiry against now: month in 1-12 and the
// (2000+YY, MM) pair not strictly before the current month. The current
// month itself is valid.
func ValidExpiry(exp string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(exp)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	year += 2000
	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

// ValidCVV requires exactly 3 digits.
func ValidCVV(cvv string) bool {
	return cvvRe.MatchString(cvv)
}

// ValidDocument applies the rule keyed by document type: DNI 7-9 digits,
// CUIL/CUIT exactly 11 digits, Pasaporte 6-12 alphanumerics. Passport numbers
// are not digit-normalized.
func ValidDocument(docType, number string) bool {
	switch docType {
	case models.DocDNI:
		n := len(Digits(number))
		return n >= 7 && n <= 9
	case models.DocCUIL, models.DocCUIT:
		return len(Digits(number)) == 11
	case models.DocPasaporte:
		return passportRe.MatchString(number)
	default:
		return false
	}
}

// Brand guesses the card brand from the leading digit.
func Brand(number string) string {
	d := Digits(number)
	if d == "" {
		return ""
	}
	switch d[0] {
	case '4':
		return "VISA"
	case '5':
		return "MASTERCARD"
	case '3':
		return "AMEX"
	default:
		return ""
	}
}

// Form holds the raw card-form fields as typed by the user.
type Form struct {
	Number         string
	HolderName     string
	Expiry         string // MM/YY
	CVV            string
	DocumentType   string
	DocumentNumber string
}

// Validate re-derives every field check and returns the first failure in
// field order (number, holder, expiry, cvv, document), or nil when the form
// is ready to continue.
func (f Form) Validate(now time.Time) error {
	if !ValidNumber(f.Number) {
		return ErrNumber
	}
	if !ValidHolder(f.HolderName) {
		return ErrHolder
	}
	if !ValidExpiry(f.Expiry, now) {
		return ErrExpiry
	}
	if !ValidCVV(f.CVV) {
		return ErrCVV
	}
	if !ValidDocument(f.DocumentType, f.DocumentNumber) {
		return ErrDocument
	}
	return nil
}

// CardData projects a validated form into the record sent to the API. kind is
// CREDIT_CARD or DEBIT_CARD. Callers must Validate first.
func (f Form) CardData(kind string, now time.Time) (models.CardData, error) {
	if err := f.Validate(now); err != nil {
		return models.CardData{}, err
	}
	m := expiryRe.FindStringSubmatch(f.Expiry)
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	doc := f.DocumentNumber
	if f.DocumentType != models.DocPasaporte {
		doc = Digits(doc)
	}
	return models.CardData{
		Kind:           kind,
		Number:         Digits(f.Number),
		HolderName:     strings.TrimSpace(f.HolderName),
		ExpMonth:       month,
		ExpYear:        2000 + year,
		CVV:            f.CVV,
		DocumentType:   f.DocumentType,
		DocumentNumber: doc,
		Brand:          Brand(f.Number),
	}, nil
}

// FieldStates reports per-field validity for rendering inline errors; the
// continue action is enabled only when every field passes.
type FieldStates struct {
	Number   bool
	Holder   bool
	Expiry   bool
	CVV      bool
	Document bool
}

func (f Form) Fields(now time.Time) FieldStates {
	return FieldStates{
		Number:   ValidNumber(f.Number),
		Holder:   ValidHolder(f.HolderName),
		Expiry:   ValidExpiry(f.Expiry, now),
		CVV:      ValidCVV(f.CVV),
		Document: ValidDocument(f.DocumentType, f.DocumentNumber),
	}
}

// AllValid reports whether the continue action should be enabled.
func (s FieldStates) AllValid() bool {
	return s.Number && s.Holder && s.Expiry && s.CVV && s.Document
}

// DocumentTypes lists the accepted document types in display order.
func DocumentTypes() []string {
	return []string{models.DocDNI, models.DocCUIL, models.DocCUIT, models.DocPasaporte}
}
