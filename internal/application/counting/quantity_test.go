package counting

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sysstock-api/internal/domain"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"entero simple", "5", "5"},
		{"decimal con punto", "1234.56", "1234.56"},
		{"decimal con coma", "1234,56", "1234.56"},
		{"miles con punto y coma decimal", "1.234,56", "1234.56"},
		{"miles con coma y punto decimal", "1,234.56", "1234.56"},
		{"varios grupos de miles", "1.234.567,89", "1234567.89"},
		{"prefijo monetario", "R$ 12,50", "12.5"},
		{"espacios internos", " 1 234,5 ", "1234.5"},
		{"negativo", "-3,5", "-3.5"},
		{"vacío vale cero", "", "0"},
		{"solo espacios vale cero", "   ", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.raw)
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, want.Equal(got), "esperado %s, obtenido %s", want, got)
		})
	}
}

func TestParseQuantity_Invalida(t *testing.T) {
	for _, raw := range []string{"abc", "1,2,3.4.5", "--5", "1..2"} {
		_, err := ParseQuantity(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %q", raw)
	}
}

func TestParseQuantityJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ausente vale uno", "", "1"},
		{"null vale uno", "null", "1"},
		{"número JSON", "2.5", "2.5"},
		{"número negativo", "-1", "-1"},
		{"string con coma decimal", `"12,5"`, "12.5"},
		{"string con miles", `"1.234,56"`, "1234.56"},
		{"string vacía vale cero", `""`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantityJSON(json.RawMessage(tt.raw))
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, want.Equal(got), "esperado %s, obtenido %s", want, got)
		})
	}
}

func TestParseQuantityJSON_Invalida(t *testing.T) {
	for _, raw := range []string{`"abc"`, `{}`, `[1]`} {
		_, err := ParseQuantityJSON(json.RawMessage(raw))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %q", raw)
	}
}
