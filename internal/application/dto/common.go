package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/application/counting"
	"github.com/jhoicas/sysstock-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP con flag de éxito explícito.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail construye un ErrorResponse.
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// FlexDecimal acepta en JSON tanto número como string con formato de locale
// ("1.234,56", "1234.56"). Ausente o null vale cero.
type FlexDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return domain.ErrInvalidInput
		}
		d, err := counting.ParseQuantity(unquoted)
		if err != nil {
			return err
		}
		f.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return domain.ErrInvalidInput
	}
	f.Decimal = d
	return nil
}
