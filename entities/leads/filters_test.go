package leads

import (
	"api/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeLead(name string, createdAt time.Time) schemas.LeadDetails {
	return schemas.LeadDetails{
		Lead: schemas.Lead{
			Name:      name,
			CreatedAt: createdAt,
		},
	}
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Now()
	list := []schemas.LeadDetails{
		makeLead("Hoje", now),
		makeLead("Ontem", now.AddDate(0, 0, -1)),
		makeLead("Semana passada", now.AddDate(0, 0, -6)),
		makeLead("Mês passado", now.AddDate(0, 0, -20)),
		makeLead("Antigo", now.AddDate(0, -3, 0)),
		makeLead("Sem data", time.Time{}),
	}

	t.Run("Total devolve tudo", func(t *testing.T) {
		filtered := FilterByPeriod(list, schemas.PERIOD_TOTAL, schemas.CustomRange{})
		assert.Len(t, filtered, len(list))
	})

	t.Run("Hoje filtra por dia de calendário", func(t *testing.T) {
		filtered := FilterByPeriod(list, schemas.PERIOD_HOJE, schemas.CustomRange{})
		assert.Len(t, filtered, 1)
		assert.Equal(t, "Hoje", filtered[0].Name)
	})

	t.Run("Sete dias", func(t *testing.T) {
		filtered := FilterByPeriod(list, schemas.PERIOD_7D, schemas.CustomRange{})
		assert.Len(t, filtered, 3)
	})

	t.Run("Trinta dias", func(t *testing.T) {
		filtered := FilterByPeriod(list, schemas.PERIOD_30D, schemas.CustomRange{})
		assert.Len(t, filtered, 4)
	})

	t.Run("Data zerada fica fora de janelas limitadas", func(t *testing.T) {
		filtered := FilterByPeriod(list, schemas.PERIOD_30D, schemas.CustomRange{})
		for _, lead := range filtered {
			assert.NotEqual(t, "Sem data", lead.Name)
		}
	})

	t.Run("Customizado exige as duas pontas", func(t *testing.T) {
		from := now.AddDate(0, 0, -2)
		filtered := FilterByPeriod(list, schemas.PERIOD_CUSTOM, schemas.CustomRange{From: &from})
		assert.Len(t, filtered, len(list))
	})

	t.Run("Customizado com intervalo completo", func(t *testing.T) {
		from := now.AddDate(0, 0, -7)
		to := now.AddDate(0, 0, -1)
		filtered := FilterByPeriod(list, schemas.PERIOD_CUSTOM, schemas.CustomRange{From: &from, To: &to})
		assert.Len(t, filtered, 2)
	})
}

func TestFilterBySearch(t *testing.T) {
	list := []schemas.LeadDetails{
		{Lead: schemas.Lead{Name: "João Silva", ContactPhone: "5511987654321", LastCity: "Campinas"}},
		{Lead: schemas.Lead{Name: "Maria Souza", Email: "maria@exemplo.com", Source: "Instagram"}},
		{Lead: schemas.Lead{Name: "Pedro"}, OwnerName: "Ana Vendedora"},
	}

	t.Run("Consulta vazia devolve tudo", func(t *testing.T) {
		assert.Len(t, FilterBySearch(list, ""), 3)
		assert.Len(t, FilterBySearch(list, "   "), 3)
	})

	t.Run("Busca sem caixa no nome", func(t *testing.T) {
		filtered := FilterBySearch(list, "joão")
		assert.Len(t, filtered, 1)
		assert.Equal(t, "João Silva", filtered[0].Name)
	})

	t.Run("Busca por telefone", func(t *testing.T) {
		filtered := FilterBySearch(list, "98765")
		assert.Len(t, filtered, 1)
	})

	t.Run("Busca por responsável", func(t *testing.T) {
		filtered := FilterBySearch(list, "vendedora")
		assert.Len(t, filtered, 1)
		assert.Equal(t, "Pedro", filtered[0].Name)
	})

	t.Run("Sem resultado devolve lista vazia", func(t *testing.T) {
		filtered := FilterBySearch(list, "xyz")
		assert.Empty(t, filtered)
	})
}
