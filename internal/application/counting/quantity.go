package counting

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain"
)

// ParseQuantity convierte una cantidad en formato tolerante a locale.
// Acepta "." y "," como separador decimal; si aparecen ambos, el que
// aparece primero se trata como separador de miles y se descarta, el otro
// como punto decimal ("1.234,56" y "1,234.56" → 1234.56). Si solo aparece
// ",", es el punto decimal. Cadena vacía vale cero.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}

	comma := strings.Index(s, ",")
	dot := strings.Index(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if dot < comma {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}

// ParseQuantityJSON interpreta el campo quantidade del body: número JSON o
// string con formato de locale. Ausente o null vale 1, el default de un
// escaneo simple.
func ParseQuantityJSON(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return decimal.NewFromInt(1), nil
	}
	if trimmed[0] == '"' {
		unquoted, err := strconv.Unquote(trimmed)
		if err != nil {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return ParseQuantity(unquoted)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}
