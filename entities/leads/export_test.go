package leads

import (
	"api/schemas"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCSV(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	list := []schemas.LeadDetails{
		{
			Lead: schemas.Lead{
				Name:            "João Silva",
				LastCity:        "São Paulo",
				Email:           "joao@exemplo.com",
				ContactPhone:    "5511987654321",
				Source:          "WhatsApp",
				Status:          schemas.LEAD_STATUS_FECHADO,
				Value:           1234.5,
				ConnectionLevel: schemas.LEAD_CONEXAO_ALTA,
				CreatedAt:       createdAt,
			},
			OwnerName: "Ana",
		},
		{
			Lead: schemas.Lead{
				Name:   `Empresa "XYZ", Ltda`,
				Status: schemas.LEAD_STATUS_NOVO,
			},
		},
	}

	csv := string(BuildCSV(list))
	lines := strings.Split(csv, "\n")

	t.Run("Uma linha por lead mais o cabeçalho", func(t *testing.T) {
		assert.Len(t, lines, len(list)+1)
	})

	t.Run("Começa com BOM UTF-8", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(csv, "\uFEFF"))
	})

	t.Run("Cabeçalho fixo", func(t *testing.T) {
		assert.Equal(t, "\uFEFFNome,Cidade,Email,Telefone,Origem,Status,Valor,Conexão,Data Criação,Responsável", lines[0])
	})

	t.Run("Valor no padrão brasileiro e data dd/MM/yyyy", func(t *testing.T) {
		assert.Contains(t, lines[1], `"1.234,50"`)
		assert.Contains(t, lines[1], `"15/03/2026"`)
	})

	t.Run("Aspas internas dobradas", func(t *testing.T) {
		assert.Contains(t, lines[2], `"Empresa ""XYZ"", Ltda"`)
	})

	t.Run("Valor zero vira campo vazio", func(t *testing.T) {
		assert.Contains(t, lines[2], `"Novo",,`)
	})
}

func TestFormatValueBR(t *testing.T) {
	assert.Equal(t, "0,00", formatValueBR(0))
	assert.Equal(t, "999,99", formatValueBR(999.99))
	assert.Equal(t, "1.000,00", formatValueBR(1000))
	assert.Equal(t, "1.234.567,89", formatValueBR(1234567.89))
	assert.Equal(t, "-1.500,00", formatValueBR(-1500))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, "leads_2026-03-15_14-30-45.csv", ExportFilename(now))
}
