package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripledger/tripledger/internal/trip"
	"github.com/tripledger/tripledger/pkg/middleware"
	"github.com/tripledger/tripledger/pkg/response"
)

// Handler handles HTTP requests for balances and settlements
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Delete("/{id}", h.Delete)
	r.Get("/trip/{tripId}", h.History)
	r.Get("/trip/{tripId}/balances", h.Balances)
	r.Get("/trip/{tripId}/plan", h.Plan)

	return r
}

// Balances handles GET /settlements/trip/{tripId}/balances
// @Summary      Get trip balance sheet
// @Description  Get per-person paid, owed, and net balances for a trip
// @Tags         settlements
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=BalanceSheetResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/trip/{tripId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	t, entries, err := h.service.BalanceSheet(r.Context(), chi.URLParam(r, "tripId"), userID)
	if err != nil {
		writeSettlementError(w, err, "Failed to build balance sheet")
		return
	}

	response.JSON(w, http.StatusOK, &BalanceSheetResponse{
		TripID:   t.ID,
		Currency: t.Currency,
		Entries:  entries,
	})
}

// Plan handles GET /settlements/trip/{tripId}/plan
// @Summary      Get settlement plan
// @Description  Get the minimal set of payments that settles the trip's balances
// @Tags         settlements
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/trip/{tripId}/plan [get]
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	t, transfers, err := h.service.Plan(r.Context(), chi.URLParam(r, "tripId"), userID)
	if err != nil {
		writeSettlementError(w, err, "Failed to build settlement plan")
		return
	}

	response.JSON(w, http.StatusOK, &PlanResponse{
		TripID:    t.ID,
		Currency:  t.Currency,
		Transfers: transfers,
	})
}

// History handles GET /settlements/trip/{tripId}
// @Summary      List recorded settlements
// @Description  List the payments recorded on a trip, oldest first
// @Tags         settlements
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements/trip/{tripId} [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	t, settlements, err := h.service.History(r.Context(), chi.URLParam(r, "tripId"), userID)
	if err != nil {
		writeSettlementError(w, err, "Failed to list settlements")
		return
	}

	names := ParticipantNames(t)
	responses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse(names)
	}

	response.JSON(w, http.StatusOK, responses)
}

// Record handles POST /settlements
// @Summary      Record a settlement
// @Description  Record a payment between two trip participants; it reduces both balances immediately
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body RecordSettlementRequest true "Settlement record request"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	rec, err := h.service.Record(r.Context(), userID, &req)
	if err != nil {
		writeSettlementError(w, err, "Failed to record settlement")
		return
	}

	response.JSON(w, http.StatusCreated, rec.ToResponse(nil))
}

// Delete handles DELETE /settlements/{id}
// @Summary      Delete a recorded settlement
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeSettlementError(w, err, "Failed to delete settlement")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Settlement deleted successfully"})
}

// writeSettlementError maps service errors onto HTTP statuses
func writeSettlementError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSettlementNotFound), errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, trip.ErrNotOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrUnknownParticipant),
		errors.Is(err, ErrSamePerson),
		errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
