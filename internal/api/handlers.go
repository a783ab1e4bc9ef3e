// Package api binds the forwarder to the local HTTP surface.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// OrderService is the core both adapters share.
type OrderService interface {
	PlaceOrder(ctx context.Context, req model.OrderRequest) (model.OrderResult, error)
	Positions(ctx context.Context) (model.PositionsSnapshot, error)
}

type Handler struct {
	svc    OrderService
	logger logger.Logger
}

func NewHandler(svc OrderService, logger logger.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", uuid.NewString())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "can't read request body")
		return
	}

	var req model.OrderRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		log.Warnf("%s: malformed order body", err)
		writeError(w, http.StatusBadRequest, "malformed order request body")
		return
	}

	result, err := h.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			status = http.StatusBadRequest
		}
		log.Errorf("%s: place_order failed", err)
		writeError(w, status, err.Error())
		return
	}

	log.Infof("place_order ok, id %s", result.OrderID)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getPositions(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", uuid.NewString())

	snapshot, err := h.svc.Positions(r.Context())
	if err != nil {
		log.Errorf("%s: get_positions failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Infof("get_positions ok: %d net, %d day", len(snapshot.Net), len(snapshot.Day))
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, descriptor())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
