package handlers

import (
	"net/http"

	"github.com/username/bigmacindex/src/services"
	"github.com/username/bigmacindex/src/utils"
)

// ChartHandler serves chart series and the valuation map.
type ChartHandler struct {
	visualizationService services.VisualizationService
}

func NewChartHandler(service services.VisualizationService) *ChartHandler {
	return &ChartHandler{visualizationService: service}
}

func (h *ChartHandler) HandleGrowthChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.visualizationService.GrowthChart(r.Context(), r.PathValue("name"))
	if err != nil {
		sendServiceError(w, r, "Error building growth chart", err)
		return
	}
	utils.SendJSON(w, r, chart)
}

func (h *ChartHandler) HandleRelativePriceChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.visualizationService.RelativePriceChart(r.Context(), r.PathValue("name"))
	if err != nil {
		sendServiceError(w, r, "Error building relative price chart", err)
		return
	}
	utils.SendJSON(w, r, chart)
}

func (h *ChartHandler) HandlePriceTrendChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.visualizationService.PriceTrendChart(r.Context(), r.PathValue("name"))
	if err != nil {
		sendServiceError(w, r, "Error building price trend chart", err)
		return
	}
	utils.SendJSON(w, r, chart)
}

func (h *ChartHandler) HandleValuationMap(w http.ResponseWriter, r *http.Request) {
	vm, err := h.visualizationService.ValuationMap(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		sendServiceError(w, r, "Error building valuation map", err)
		return
	}
	utils.SendJSON(w, r, vm)
}
