package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagos/internal/models"
)

var now = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func TestValidNumber(t *testing.T) {
	require.True(t, ValidNumber("4111111111111111"))
	require.True(t, ValidNumber("4111 1111 1111 1111"))
	require.True(t, ValidNumber("4111-1111-1111-1111"))
	require.False(t, ValidNumber("411111111111111"))
	require.False(t, ValidNumber("41111111111111112"))
	require.False(t, ValidNumber(""))
}

func TestFormatAndMask(t *testing.T) {
	require.Equal(t, "4111 1111 1111 1111", Format("4111111111111111"))
	require.Equal(t, "4111 11", Format("411111"))
	require.Equal(t, "•••• •••• •••• 1111", Mask("4111111111111111"))
	require.Equal(t, "", Mask("41"))
}

func TestValidHolder(t *testing.T) {
	require.True(t, ValidHolder("Test User"))
	require.True(t, ValidHolder("O'Brien-Pérez Jr."))
	require.False(t, ValidHolder("Ab"))
	require.False(t, ValidHolder("User 123"))
	require.False(t, ValidHolder(""))

	long := make([]byte, 61)
	for i := range long {
		long[i] = 'a'
	}
	require.False(t, ValidHolder(string(long)))
	require.True(t, ValidHolder(string(long[:60])))
}

func TestValidExpiry(t *testing.T) {
	cases := []struct {
		exp   string
		valid bool
	}{
		{"12/99", true},  // far future
		{"08/26", true},  // current month counts as valid
		{"09/26", true},  // next month
		{"07/26", false}, // last month
		{"12/25", false}, // last year
		{"00/27", false},
		{"13/27", false},
		{"1/27", false}, // must be MM/YY
		{"01-27", false},
		{"", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.valid, ValidExpiry(tc.exp, now), "expiry %q", tc.exp)
	}
}

func TestValidCVV(t *testing.T) {
	require.True(t, ValidCVV("123"))
	require.False(t, ValidCVV("12"))
	require.False(t, ValidCVV("1234"))
	require.False(t, ValidCVV("12a"))
}

func TestValidDocument(t *testing.T) {
	cases := []struct {
		docType, number string
		valid           bool
	}{
		{models.DocDNI, "1234567", true},
		{models.DocDNI, "12.345.678", true}, // 8 digits after normalization
		{models.DocDNI, "123456789", true},
		{models.DocDNI, "123456", false},
		{models.DocDNI, "1234567890", false},
		{models.DocCUIL, "20123456789", true},
		{models.DocCUIL, "20-12345678-9", true},
		{models.DocCUIL, "2012345678", false},
		{models.DocCUIT, "30712345678", true},
		{models.DocCUIT, "307123456789", false},
		{models.DocPasaporte, "AB1234", true},
		{models.DocPasaporte, "AB123456789012", false}, // 14 chars
		{models.DocPasaporte, "AB-123", false},         // no symbols
		{models.DocPasaporte, "AB12", false},
		{"LC", "1234567", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.valid, ValidDocument(tc.docType, tc.number), "%s %q", tc.docType, tc.number)
	}
}

func TestBrand(t *testing.T) {
	require.Equal(t, "VISA", Brand("4111111111111111"))
	require.Equal(t, "MASTERCARD", Brand("5500000000000004"))
	require.Equal(t, "AMEX", Brand("3400000000000000"))
	require.Equal(t, "", Brand("6011000000000000"))
	require.Equal(t, "", Brand(""))
}

func validForm() Form {
	return Form{
		Number:         "4111 1111 1111 1111",
		HolderName:     "Test User",
		Expiry:         "12/99",
		CVV:            "123",
		DocumentType:   models.DocDNI,
		DocumentNumber: "12345678",
	}
}

func TestFormValidateFirstError(t *testing.T) {
	f := validForm()
	require.NoError(t, f.Validate(now))

	f.Number = "123"
	f.CVV = "1"
	// Both fields fail; the number error comes first.
	require.ErrorIs(t, f.Validate(now), ErrNumber)

	f = validForm()
	f.HolderName = "X"
	require.ErrorIs(t, f.Validate(now), ErrHolder)

	f = validForm()
	f.Expiry = "07/26"
	require.ErrorIs(t, f.Validate(now), ErrExpiry)

	f = validForm()
	f.CVV = "12"
	require.ErrorIs(t, f.Validate(now), ErrCVV)

	f = validForm()
	f.DocumentNumber = "12"
	require.ErrorIs(t, f.Validate(now), ErrDocument)
}

func TestFieldsGateContinue(t *testing.T) {
	f := validForm()
	require.True(t, f.Fields(now).AllValid())

	for _, mutate := range []func(*Form){
		func(f *Form) { f.Number = "4111" },
		func(f *Form) { f.HolderName = "ab" },
		func(f *Form) { f.Expiry = "13/30" },
		func(f *Form) { f.CVV = "12345" },
		func(f *Form) { f.DocumentNumber = "" },
	} {
		broken := validForm()
		mutate(&broken)
		require.False(t, broken.Fields(now).AllValid())
	}
}

func TestCardDataProjection(t *testing.T) {
	f := validForm()
	data, err := f.CardData(models.MethodCreditCard, now)
	require.NoError(t, err)
	require.Equal(t, models.MethodCreditCard, data.Kind)
	require.Equal(t, "4111111111111111", data.Number)
	require.Equal(t, "Test User", data.HolderName)
	require.Equal(t, 12, data.ExpMonth)
	require.Equal(t, 2099, data.ExpYear)
	require.Equal(t, "123", data.CVV)
	require.Equal(t, models.DocDNI, data.DocumentType)
	require.Equal(t, "12345678", data.DocumentNumber)
	require.Equal(t, "VISA", data.Brand)
}

func TestCardDataKeepsPassportVerbatim(t *testing.T) {
	f := validForm()
	f.DocumentType = models.DocPasaporte
	f.DocumentNumber = "AB123456"
	data, err := f.CardData(models.MethodDebitCard, now)
	require.NoError(t, err)
	require.Equal(t, "AB123456", data.DocumentNumber)
	require.Equal(t, models.MethodDebitCard, data.Kind)
}

func TestCardDataRefusesInvalidForm(t *testing.T) {
	f := validForm()
	f.Expiry = "01/20"
	_, err := f.CardData(models.MethodCreditCard, now)
	require.ErrorIs(t, err, ErrExpiry)
}
