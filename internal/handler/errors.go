package handler

import (
	"errors"

	"pagos/internal/api"
)

// refundMessage surfaces the server-provided message for a failed refund
// request, falling back to a generic one.
func refundMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "No se pudo solicitar el reembolso."
}
