package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/services"
	"github.com/username/bigmacindex/src/utils"
)

const maxWriteBodyBytes = 1 << 16

// WriteHandler serves the two authenticated write endpoints. Both answer
// plain text, including errors.
type WriteHandler struct {
	writeService services.WriteService
}

func NewWriteHandler(service services.WriteService) *WriteHandler {
	return &WriteHandler{writeService: service}
}

type updateLocalPriceRequest struct {
	Name       string   `json:"name"`
	LocalPrice *float64 `json:"local_price"`
}

type insertRecordRequest struct {
	Date       string   `json:"date"`
	LocalPrice *float64 `json:"local_price"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxWriteBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *WriteHandler) HandleUpdateLocalPrice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req updateLocalPriceRequest
	if err := decodeBody(w, r, &req); err != nil {
		log.Warn("Invalid update_local_price body", "error", err)
		utils.SendText(w, "name and a numeric local_price are required", http.StatusBadRequest)
		return
	}

	date, err := h.writeService.UpdateLocalPrice(r.Context(), strings.TrimSpace(req.Name), req.LocalPrice)
	switch {
	case err == nil:
		utils.SendText(w, fmt.Sprintf("local_price and date updated (%s)", date), http.StatusOK)
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendText(w, "name and a numeric local_price are required", http.StatusBadRequest)
	case errors.Is(err, services.ErrNameNotFound):
		utils.SendText(w, services.ErrNameNotFound.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrStaleDate):
		utils.SendText(w, services.ErrStaleDate.Error(), http.StatusBadRequest)
	default:
		log.Error("Failed to update local price", "name", req.Name, "error", err)
		utils.SendText(w, "update failed", http.StatusInternalServerError)
	}
}

func (h *WriteHandler) HandleInsertRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req insertRecordRequest
	if err := decodeBody(w, r, &req); err != nil {
		log.Warn("Invalid update body", "error", err)
		utils.SendText(w, "date and a numeric local_price are required", http.StatusBadRequest)
		return
	}

	id, err := h.writeService.InsertRecord(r.Context(), strings.TrimSpace(req.Date), req.LocalPrice)
	switch {
	case err == nil:
		utils.SendText(w, fmt.Sprintf("inserted, id: %d", id), http.StatusOK)
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendText(w, "date and a numeric local_price are required", http.StatusBadRequest)
	default:
		log.Error("Failed to insert record", "date", req.Date, "error", err)
		utils.SendText(w, "insert failed", http.StatusInternalServerError)
	}
}
