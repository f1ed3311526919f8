package report

import (
	"api/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lead(status string, value float64) schemas.LeadDetails {
	return schemas.LeadDetails{Lead: schemas.Lead{Status: status, Value: value}}
}

func TestComputeKPIs(t *testing.T) {
	t.Run("Cenário básico", func(t *testing.T) {
		leads := []schemas.LeadDetails{
			lead(schemas.LEAD_STATUS_NOVO, 0),
			lead(schemas.LEAD_STATUS_FECHADO, 500),
			lead(schemas.LEAD_STATUS_FECHADO, 300),
		}

		kpis := ComputeKPIs(leads)
		assert.Equal(t, 3, kpis.TotalLeads)
		assert.Equal(t, 2, kpis.NegociosGanhos)
		assert.Equal(t, 800.0, kpis.ValorTotal)
		assert.InDelta(t, 66.67, kpis.TaxaConversao, 0.01)
	})

	t.Run("Valor de lead aberto não conta", func(t *testing.T) {
		leads := []schemas.LeadDetails{
			lead(schemas.LEAD_STATUS_ORCAMENTO, 1000),
			lead(schemas.LEAD_STATUS_FECHADO, 200),
		}

		kpis := ComputeKPIs(leads)
		assert.Equal(t, 200.0, kpis.ValorTotal)
	})

	t.Run("Lista vazia não divide por zero", func(t *testing.T) {
		kpis := ComputeKPIs(nil)
		assert.Equal(t, 0, kpis.TotalLeads)
		assert.Equal(t, 0.0, kpis.TaxaConversao)
	})
}

func TestGroupLeadsByDay(t *testing.T) {
	at := func(day, month int) time.Time {
		return time.Date(2026, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	}

	leads := []schemas.LeadDetails{
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_NOVO, CreatedAt: at(20, 3)}},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_FECHADO, Value: 100, CreatedAt: at(5, 4)}},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_FECHADO, Value: 50, CreatedAt: at(20, 3)}},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_NOVO, CreatedAt: at(1, 3)}},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_NOVO}},
	}

	days := GroupLeadsByDay(leads)

	t.Run("Ordena por mês e depois por dia", func(t *testing.T) {
		assert.Equal(t, []string{"01/03", "20/03", "05/04"}, []string{days[0].Date, days[1].Date, days[2].Date})
	})

	t.Run("Conta leads e soma ganhos por dia", func(t *testing.T) {
		assert.Equal(t, 2, days[1].Leads)
		assert.Equal(t, 50.0, days[1].Ganhos)
		assert.Equal(t, 100.0, days[2].Ganhos)
	})

	t.Run("Data zerada fica fora", func(t *testing.T) {
		total := 0
		for _, day := range days {
			total += day.Leads
		}
		assert.Equal(t, 4, total)
	})
}

func TestGroupLeadsByOrigin(t *testing.T) {
	leads := []schemas.LeadDetails{
		{Lead: schemas.Lead{Source: "WhatsApp", Status: schemas.LEAD_STATUS_FECHADO, Value: 100}},
		{Lead: schemas.Lead{Source: "Instagram", Status: schemas.LEAD_STATUS_NOVO}},
		{Lead: schemas.Lead{Source: "WhatsApp", Status: schemas.LEAD_STATUS_NOVO}},
	}

	origins := GroupLeadsByOrigin(leads)

	assert.Len(t, origins, 2)
	assert.Equal(t, "WhatsApp", origins[0].Origem)
	assert.Equal(t, 2, origins[0].Leads)
	assert.Equal(t, 100.0, origins[0].Ganhos)
	assert.Equal(t, "Instagram", origins[1].Origem)

	total := 0
	for _, origin := range origins {
		total += origin.Leads
	}
	assert.Equal(t, len(leads), total)
}

func TestComputeFunnelData(t *testing.T) {
	leads := []schemas.LeadDetails{
		lead(schemas.LEAD_STATUS_NOVO, 0),
		lead(schemas.LEAD_STATUS_NOVO, 0),
		lead(schemas.LEAD_STATUS_FECHADO, 100),
		lead(schemas.LEAD_STATUS_PERDIDO, 0),
	}

	steps := ComputeFunnelData(leads)

	t.Run("Uma etapa por status, na ordem do funil", func(t *testing.T) {
		assert.Len(t, steps, len(schemas.LeadStatuses))
		for i, status := range schemas.LeadStatuses {
			assert.Equal(t, status, steps[i].Name)
		}
	})

	t.Run("Soma das etapas bate com o total", func(t *testing.T) {
		total := 0
		for _, step := range steps {
			total += step.Value
		}
		assert.Equal(t, len(leads), total)
	})
}

func TestVisibleFunnelSteps(t *testing.T) {
	steps := []FunnelStep{
		{Name: schemas.LEAD_STATUS_NOVO, Value: 5},
		{Name: schemas.LEAD_STATUS_ATENDIMENTO, Value: 0},
		{Name: schemas.LEAD_STATUS_ORCAMENTO, Value: 2},
		{Name: schemas.LEAD_STATUS_FECHADO, Value: 1},
		{Name: schemas.LEAD_STATUS_PERDIDO, Value: 2},
		{Name: schemas.LEAD_STATUS_REMARKETING, Value: 0},
	}

	visible := VisibleFunnelSteps(steps)

	t.Run("Esconde Perdido, Remarketing e etapas zeradas", func(t *testing.T) {
		assert.Len(t, visible, 3)
		for _, step := range visible {
			assert.NotEqual(t, schemas.LEAD_STATUS_PERDIDO, step.Name)
			assert.NotEqual(t, schemas.LEAD_STATUS_REMARKETING, step.Name)
			assert.Greater(t, step.Value, 0)
		}
	})

	t.Run("Porcentagem contra o total verdadeiro", func(t *testing.T) {
		// Total conta as etapas escondidas: 10, não 8.
		assert.InDelta(t, 50.0, visible[0].PercentOfTotal, 0.01)
		assert.InDelta(t, 20.0, visible[1].PercentOfTotal, 0.01)
		assert.InDelta(t, 10.0, visible[2].PercentOfTotal, 0.01)
	})

	t.Run("Funil vazio não divide por zero", func(t *testing.T) {
		assert.Empty(t, VisibleFunnelSteps(nil))
	})
}

func TestGroupRevenueBySeller(t *testing.T) {
	leads := []schemas.LeadDetails{
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_FECHADO, Value: 100}, OwnerName: "Ana"},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_FECHADO, Value: 500}, OwnerName: "Bruno"},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_FECHADO, Value: 200}, OwnerName: "Ana"},
		{Lead: schemas.Lead{Status: schemas.LEAD_STATUS_ORCAMENTO, Value: 900}, OwnerName: "Ana"},
	}

	revenue := GroupRevenueBySeller(leads)

	assert.Len(t, revenue, 2)
	assert.Equal(t, "Bruno", revenue[0].Responsavel)
	assert.Equal(t, 500.0, revenue[0].Receita)
	assert.Equal(t, "Ana", revenue[1].Responsavel)
	assert.Equal(t, 300.0, revenue[1].Receita)
}
