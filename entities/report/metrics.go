package report

import (
	"api/schemas"
	"sort"
)

type KPIMetrics struct {
	TotalLeads     int     `json:"total_leads"`
	NegociosGanhos int     `json:"negocios_ganhos"`
	ValorTotal     float64 `json:"valor_total"`
	TaxaConversao  float64 `json:"taxa_conversao"`
}

// ComputeKPIs fecha os quatro números do topo do painel. O valor total
// soma apenas leads fechados; a taxa de conversão é fechados sobre o
// total do recorte, em porcentagem.
func ComputeKPIs(leads []schemas.LeadDetails) KPIMetrics {
	kpis := KPIMetrics{TotalLeads: len(leads)}

	for _, lead := range leads {
		if lead.Status == schemas.LEAD_STATUS_FECHADO {
			kpis.NegociosGanhos++
			kpis.ValorTotal += lead.Value
		}
	}

	if kpis.TotalLeads > 0 {
		kpis.TaxaConversao = float64(kpis.NegociosGanhos) / float64(kpis.TotalLeads) * 100
	}

	return kpis
}

type DailyData struct {
	Date   string  `json:"date"`
	Leads  int     `json:"leads"`
	Ganhos float64 `json:"ganhos"`
}

// GroupLeadsByDay agrupa por dia de criação no formato "dd/MM" e ordena
// por mês e depois por dia. A chave descarta o ano de propósito, então
// recortes maiores que um ano colapsam dias homônimos.
func GroupLeadsByDay(leads []schemas.LeadDetails) []DailyData {
	grouped := map[string]*DailyData{}

	for _, lead := range leads {
		if lead.CreatedAt.IsZero() {
			continue
		}
		date := lead.CreatedAt.Format("02/01")
		entry, ok := grouped[date]
		if !ok {
			entry = &DailyData{Date: date}
			grouped[date] = entry
		}
		entry.Leads++
		if lead.Status == schemas.LEAD_STATUS_FECHADO {
			entry.Ganhos += lead.Value
		}
	}

	days := make([]DailyData, 0, len(grouped))
	for _, entry := range grouped {
		days = append(days, *entry)
	}

	sort.Slice(days, func(i, j int) bool {
		dayA, monthA := splitDayMonth(days[i].Date)
		dayB, monthB := splitDayMonth(days[j].Date)
		if monthA == monthB {
			return dayA < dayB
		}
		return monthA < monthB
	})

	return days
}

func splitDayMonth(date string) (int, int) {
	day := int(date[0]-'0')*10 + int(date[1]-'0')
	month := int(date[3]-'0')*10 + int(date[4]-'0')
	return day, month
}

type OriginData struct {
	Origem string  `json:"origem"`
	Leads  int     `json:"leads"`
	Ganhos float64 `json:"ganhos"`
}

// GroupLeadsByOrigin agrupa por origem na ordem em que cada origem
// aparece na listagem.
func GroupLeadsByOrigin(leads []schemas.LeadDetails) []OriginData {
	grouped := map[string]*OriginData{}
	order := []string{}

	for _, lead := range leads {
		entry, ok := grouped[lead.Source]
		if !ok {
			entry = &OriginData{Origem: lead.Source}
			grouped[lead.Source] = entry
			order = append(order, lead.Source)
		}
		entry.Leads++
		if lead.Status == schemas.LEAD_STATUS_FECHADO {
			entry.Ganhos += lead.Value
		}
	}

	origins := make([]OriginData, 0, len(order))
	for _, origin := range order {
		origins = append(origins, *grouped[origin])
	}

	return origins
}

type FunnelStep struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ComputeFunnelData conta os leads por etapa na ordem canônica do funil.
// Toda etapa aparece, mesmo zerada.
func ComputeFunnelData(leads []schemas.LeadDetails) []FunnelStep {
	steps := make([]FunnelStep, 0, len(schemas.LeadStatuses))

	for _, status := range schemas.LeadStatuses {
		count := 0
		for _, lead := range leads {
			if lead.Status == status {
				count++
			}
		}
		steps = append(steps, FunnelStep{Name: status, Value: count})
	}

	return steps
}

type VisibleFunnelStep struct {
	Name           string  `json:"name"`
	Value          int     `json:"value"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

// VisibleFunnelSteps é o recorte desenhado no gráfico: esconde Perdido,
// Remarketing e etapas zeradas, mas calcula a porcentagem contra o total
// verdadeiro, incluindo as etapas escondidas.
func VisibleFunnelSteps(steps []FunnelStep) []VisibleFunnelStep {
	total := 0
	for _, step := range steps {
		total += step.Value
	}
	if total == 0 {
		total = 1
	}

	visible := []VisibleFunnelStep{}
	for _, step := range steps {
		if step.Name == schemas.LEAD_STATUS_PERDIDO || step.Name == schemas.LEAD_STATUS_REMARKETING {
			continue
		}
		if step.Value <= 0 {
			continue
		}
		visible = append(visible, VisibleFunnelStep{
			Name:           step.Name,
			Value:          step.Value,
			PercentOfTotal: float64(step.Value) / float64(total) * 100,
		})
	}

	return visible
}

type RevenueBySeller struct {
	Responsavel string  `json:"responsavel"`
	Receita     float64 `json:"receita"`
}

// GroupRevenueBySeller soma a receita dos leads fechados por vendedor
// responsável, da maior para a menor.
func GroupRevenueBySeller(leads []schemas.LeadDetails) []RevenueBySeller {
	grouped := map[string]float64{}
	order := []string{}

	for _, lead := range leads {
		if lead.Status != schemas.LEAD_STATUS_FECHADO {
			continue
		}
		if _, ok := grouped[lead.OwnerName]; !ok {
			order = append(order, lead.OwnerName)
		}
		grouped[lead.OwnerName] += lead.Value
	}

	revenue := make([]RevenueBySeller, 0, len(order))
	for _, seller := range order {
		revenue = append(revenue, RevenueBySeller{Responsavel: seller, Receita: grouped[seller]})
	}

	sort.SliceStable(revenue, func(i, j int) bool {
		return revenue[i].Receita > revenue[j].Receita
	})

	return revenue
}
