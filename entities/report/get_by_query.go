package report

import (
	"api/entities/leads"
	"api/schemas"
	"api/utils"
	"net/http"
)

// GetByQuery devolve só as métricas pedidas na query string, cada uma
// sob a própria chave. O recorte de período e busca é aplicado antes de
// qualquer conta.
func GetByQuery(w http.ResponseWriter, r *http.Request) {
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

	details, err := leads.FetchDetails(r.Context())
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.ERROR_TO_FIND_IN_MONGODB)
		return
	}

	filtered := leads.FilterByPeriod(details, period, custom)
	filtered = leads.FilterBySearch(filtered, params.Get("q"))

	responseData := map[string]any{}

	if _, ok := params["kpis"]; ok {
		responseData["kpis"] = ComputeKPIs(filtered)
	}

	if _, ok := params["leads_by_day"]; ok {
		responseData["leads_by_day"] = GroupLeadsByDay(filtered)
	}

	if _, ok := params["leads_by_origin"]; ok {
		responseData["leads_by_origin"] = GroupLeadsByOrigin(filtered)
	}

	if _, ok := params["funnel"]; ok {
		responseData["funnel"] = ComputeFunnelData(filtered)
	}

	if _, ok := params["funnel_visible"]; ok {
		responseData["funnel_visible"] = VisibleFunnelSteps(ComputeFunnelData(filtered))
	}

	if _, ok := params["revenue_by_seller"]; ok {
		responseData["revenue_by_seller"] = GroupRevenueBySeller(filtered)
	}

	if len(responseData) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhuma métrica solicitada", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", responseData, 0)
}
