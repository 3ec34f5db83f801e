package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/services"
	"github.com/username/bigmacindex/src/utils"
)

// QueryHandler serves the read-only index endpoints.
type QueryHandler struct {
	queryService services.QueryService
}

func NewQueryHandler(service services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: service}
}

// sendServiceError maps a service error to its HTTP status.
func sendServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	default:
		logger.FromContext(r.Context()).Error(msg, "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, msg, http.StatusInternalServerError)
	}
}

func (h *QueryHandler) HandleGetNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.queryService.ListDistinctNames(r.Context())
	if err != nil {
		sendServiceError(w, r, "Error retrieving names", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	utils.SendJSON(w, r, names)
}

func (h *QueryHandler) HandleGetBigMac(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RecordFilter{
		Name:      strings.TrimSpace(q.Get("name")),
		Year:      q.Get("year"),
		StartYear: q.Get("startYear"),
		EndYear:   q.Get("endYear"),
	}
	if filter.Name == "" {
		utils.SendJSONError(w, "Name parameter is required", http.StatusBadRequest)
		return
	}

	logger.FromContext(r.Context()).Debug("Handling GetBigMac", "name", filter.Name, "year", filter.Year,
		"startYear", filter.StartYear, "endYear", filter.EndYear)
	records, err := h.queryService.FindRecords(r.Context(), filter)
	if err != nil {
		sendServiceError(w, r, "Error retrieving records", err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	utils.SendJSON(w, r, records)
}

func (h *QueryHandler) HandleGetLatestUSDAdjusted(w http.ResponseWriter, r *http.Request) {
	snapshot, found, err := h.queryService.LatestUSDAdjusted(r.Context())
	if err != nil {
		sendServiceError(w, r, "Error retrieving latest USD_adjusted data", err)
		return
	}
	if !found {
		utils.SendJSON(w, r, []models.Record{})
		return
	}
	utils.SendJSON(w, r, snapshot)
}

func (h *QueryHandler) HandleGetGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queryService.GlobalStats(r.Context())
	if err != nil {
		sendServiceError(w, r, "Error retrieving global stats", err)
		return
	}
	utils.SendJSON(w, r, stats)
}

func (h *QueryHandler) HandleGetGlobalSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queryService.GlobalSummary(r.Context())
	if err != nil {
		sendServiceError(w, r, "Error retrieving global summary", err)
		return
	}
	utils.SendJSON(w, r, summary)
}

func (h *QueryHandler) HandleGetCountryTrend(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	// A missing, malformed or non-positive limit means the full history.
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	trend, err := h.queryService.CountryTrend(r.Context(), name, limit)
	if err != nil {
		sendServiceError(w, r, "Error retrieving country trend", err)
		return
	}
	if trend.Data == nil {
		trend.Data = []models.Record{}
	}
	utils.SendJSON(w, r, trend)
}

func (h *QueryHandler) HandleCompareCountries(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("countries")
	if strings.TrimSpace(raw) == "" {
		utils.SendJSONError(w, "Countries parameter is required", http.StatusBadRequest)
		return
	}

	comparison, err := h.queryService.CompareCountries(r.Context(), strings.Split(raw, ","), r.URL.Query().Get("date"))
	if err != nil {
		sendServiceError(w, r, "Error comparing countries", err)
		return
	}
	if comparison.Data == nil {
		comparison.Data = []models.Record{}
	}
	utils.SendJSON(w, r, comparison)
}

func (h *QueryHandler) HandleGetCurrencyClassification(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryService.CurrencyClassification(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		sendServiceError(w, r, "Error retrieving currency classification", err)
		return
	}
	utils.SendJSON(w, r, result)
}
