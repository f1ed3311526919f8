package utils

import "strings"

// NormalizePhone limpa o telefone para o formato aceito pelo webhook de
// disparo: só dígitos, com DDI 55 na frente quando o número vem sem ele
// (até 11 dígitos = DDD + número).
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	clean := digits.String()
	if clean == "" {
		return ""
	}

	if len(clean) <= 11 {
		return "55" + clean
	}
	return clean
}
