package counting

// NormalizeIdentifier limpia un identificador escaneado: descarta todo lo
// que no sea dígito (los lectores suelen anteponer o arrastrar caracteres
// de control). Devuelve además el candidato alterno sin dígito verificador
// cuando el resultado tiene exactamente 13 dígitos (EAN-13): algunos
// catálogos guardan el código sin el verificador final. Si no aplica, el
// alterno es igual al normalizado.
func NormalizeIdentifier(raw string) (normalized, alternate string) {
	buf := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			buf = append(buf, raw[i])
		}
	}
	normalized = string(buf)
	alternate = normalized
	if len(normalized) == 13 {
		alternate = normalized[:12]
	}
	return normalized, alternate
}
