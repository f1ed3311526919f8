package leads

import (
	"api/schemas"
	"strings"
	"time"
)

// FilterByPeriod recorta a lista pela janela de criação. Datas de criação
// zeradas ficam fora de qualquer janela limitada; "total" devolve a lista
// intacta, assim como "custom" sem as duas pontas preenchidas.
func FilterByPeriod(list []schemas.LeadDetails, period string, custom schemas.CustomRange) []schemas.LeadDetails {
	now := time.Now()

	switch period {
	case schemas.PERIOD_HOJE:
		year, month, day := now.Date()
		today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		return filterLeads(list, func(lead schemas.LeadDetails) bool {
			if lead.CreatedAt.IsZero() {
				return false
			}
			y, m, d := lead.CreatedAt.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, lead.CreatedAt.Location()).Equal(today)
		})

	case schemas.PERIOD_7D:
		cutoff := now.AddDate(0, 0, -7)
		return filterLeads(list, func(lead schemas.LeadDetails) bool {
			return !lead.CreatedAt.IsZero() && !lead.CreatedAt.Before(cutoff)
		})

	case schemas.PERIOD_30D:
		cutoff := now.AddDate(0, 0, -30)
		return filterLeads(list, func(lead schemas.LeadDetails) bool {
			return !lead.CreatedAt.IsZero() && !lead.CreatedAt.Before(cutoff)
		})

	case schemas.PERIOD_CUSTOM:
		if custom.From == nil || custom.To == nil {
			return list
		}
		from := *custom.From
		to := *custom.To
		return filterLeads(list, func(lead schemas.LeadDetails) bool {
			if lead.CreatedAt.IsZero() {
				return false
			}
			return !lead.CreatedAt.Before(from) && !lead.CreatedAt.After(to)
		})
	}

	return list
}

// FilterBySearch busca por substring, sem caixa, em nome, cidade, email,
// telefone, origem e responsável. Consulta vazia devolve tudo.
func FilterBySearch(list []schemas.LeadDetails, query string) []schemas.LeadDetails {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}

	lowerQuery := strings.ToLower(query)
	return filterLeads(list, func(lead schemas.LeadDetails) bool {
		return strings.Contains(strings.ToLower(lead.Name), lowerQuery) ||
			strings.Contains(strings.ToLower(lead.LastCity), lowerQuery) ||
			strings.Contains(strings.ToLower(lead.Email), lowerQuery) ||
			strings.Contains(lead.ContactPhone, query) ||
			strings.Contains(strings.ToLower(lead.Source), lowerQuery) ||
			strings.Contains(strings.ToLower(lead.OwnerName), lowerQuery)
	})
}

func filterLeads(list []schemas.LeadDetails, keep func(schemas.LeadDetails) bool) []schemas.LeadDetails {
	filtered := []schemas.LeadDetails{}
	for _, lead := range list {
		if keep(lead) {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}
