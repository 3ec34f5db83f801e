package handlers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/security"
	"github.com/username/bigmacindex/src/services"
)

type RouterConfig struct {
	Query         services.QueryService
	Write         services.WriteService
	Visualization services.VisualizationService
	Auth          *security.AuthService
	Pinger        Pinger

	AllowedOrigins []string
	RateLimit      float64 // requests per second; <= 0 disables limiting
	RateBurst      int
	StaticDir      string // served at "/" when set
}

// NewRouter builds the full handler chain.
func NewRouter(cfg RouterConfig) http.Handler {
	queryHandler := NewQueryHandler(cfg.Query)
	writeHandler := NewWriteHandler(cfg.Write)
	chartHandler := NewChartHandler(cfg.Visualization)
	healthHandler := NewHealthHandler(cfg.Pinger)

	mux := http.NewServeMux()

	logger.L.Info("Registering API routes...")
	mux.HandleFunc("GET /api/names", queryHandler.HandleGetNames)
	mux.HandleFunc("GET /api/bigmac", queryHandler.HandleGetBigMac)
	mux.HandleFunc("GET /api/latest-usd-adjusted", queryHandler.HandleGetLatestUSDAdjusted)
	mux.HandleFunc("GET /api/global-stats", queryHandler.HandleGetGlobalStats)
	mux.HandleFunc("GET /api/global-summary", queryHandler.HandleGetGlobalSummary)
	mux.HandleFunc("GET /api/country-trend/{name}", queryHandler.HandleGetCountryTrend)
	mux.HandleFunc("GET /api/compare-countries", queryHandler.HandleCompareCountries)
	mux.HandleFunc("GET /api/currency-classification", queryHandler.HandleGetCurrencyClassification)

	mux.HandleFunc("GET /api/charts/{name}/growth", chartHandler.HandleGrowthChart)
	mux.HandleFunc("GET /api/charts/{name}/relative-price", chartHandler.HandleRelativePriceChart)
	mux.HandleFunc("GET /api/charts/{name}/price-trend", chartHandler.HandlePriceTrendChart)
	mux.HandleFunc("GET /api/map/valuation", chartHandler.HandleValuationMap)

	logger.L.Info("Registering authenticated write routes...")
	mux.HandleFunc("POST /api/update_local_price", AuthMiddleware(cfg.Auth, writeHandler.HandleUpdateLocalPrice))
	mux.HandleFunc("POST /api/update", AuthMiddleware(cfg.Auth, writeHandler.HandleInsertRecord))

	mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	if cfg.StaticDir != "" {
		logger.L.Info("Serving static files", "dir", cfg.StaticDir)
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" && r.Method == http.MethodGet {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"message": "Big Mac Index API is running"})
				return
			}
			logger.FromContext(r.Context()).Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
			http.NotFound(w, r)
		})
	}

	logger.L.Info("Applying global middleware...")
	var handler http.Handler = MetricsMiddleware(mux)
	if cfg.RateLimit > 0 {
		handler = RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst))(handler)
	}
	handler = CORSMiddleware(cfg.AllowedOrigins)(handler)
	return RequestIDMiddleware(handler)
}
