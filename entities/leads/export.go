package leads

import (
	"api/schemas"
	"api/utils"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var csvHeaders = []string{
	"Nome",
	"Cidade",
	"Email",
	"Telefone",
	"Origem",
	"Status",
	"Valor",
	"Conexão",
	"Data Criação",
	"Responsável",
}

// BuildCSV monta o arquivo de exportação: cabeçalho fixo, campos entre
// aspas com aspas internas dobradas e BOM UTF-8 na frente para o Excel
// reconhecer acentuação.
func BuildCSV(list []schemas.LeadDetails) []byte {
	var sb strings.Builder

	sb.WriteString("\uFEFF")
	sb.WriteString(strings.Join(csvHeaders, ","))

	for _, lead := range list {
		valor := ""
		if lead.Value > 0 {
			valor = escapeCSVField(formatValueBR(lead.Value))
		}

		dataCriacao := ""
		if !lead.CreatedAt.IsZero() {
			dataCriacao = escapeCSVField(lead.CreatedAt.Format("02/01/2006"))
		}

		row := []string{
			escapeCSVField(lead.Name),
			escapeCSVField(lead.LastCity),
			escapeCSVField(lead.Email),
			escapeCSVField(lead.ContactPhone),
			escapeCSVField(lead.Source),
			escapeCSVField(lead.Status),
			valor,
			escapeCSVField(lead.ConnectionLevel),
			dataCriacao,
			escapeCSVField(lead.OwnerName),
		}

		sb.WriteString("\n")
		sb.WriteString(strings.Join(row, ","))
	}

	return []byte(sb.String())
}

func escapeCSVField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// formatValueBR escreve o valor no padrão brasileiro: milhar com ponto,
// decimal com vírgula, sempre duas casas.
func formatValueBR(value float64) string {
	raw := fmt.Sprintf("%.2f", value)

	parts := strings.SplitN(raw, ".", 2)
	intPart, decPart := parts[0], parts[1]

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

func ExportFilename(now time.Time) string {
	return "leads_" + now.Format("2006-01-02_15-04-05") + ".csv"
}

// ExportCSV exporta a lista atualmente filtrada: mesmos parâmetros de
// período e busca usados pelas telas.
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	details, err := FetchDetails(r.Context())
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}

	params := r.URL.Query()

	period := params.Get("period")
	if period == "" {
		period = schemas.PERIOD_TOTAL
	}
	if !schemas.IsValidPeriodFilter(period) {
		utils.SendResponse(w, http.StatusBadRequest, "Período inválido", nil, 0)
		return
	}

	custom := schemas.CustomRange{}
	if from, ok := utils.ParseFlexibleDate(params.Get("from")); ok {
		custom.From = &from
	}
	if to, ok := utils.ParseFlexibleDate(params.Get("until")); ok {
		custom.To = &to
	}

	filtered := FilterByPeriod(details, period, custom)
	filtered = FilterBySearch(filtered, params.Get("q"))

	filename := ExportFilename(time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(BuildCSV(filtered))
}
