package export

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tripledger/tripledger/internal/trip"
	"github.com/tripledger/tripledger/pkg/middleware"
	"github.com/tripledger/tripledger/pkg/response"
)

// Handler handles HTTP requests for trip report downloads
type Handler struct {
	service *Service
}

// NewHandler creates a new export handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for export endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/trip/{tripId}/csv", h.CSV)
	r.Get("/trip/{tripId}/pdf", h.PDF)

	return r
}

// CSV handles GET /export/trip/{tripId}/csv
// @Summary      Download trip report as CSV
// @Description  Download a trip's expenses, per-person ledger, and settlement plan as a CSV file
// @Tags         export
// @Produce      text/csv
// @Param        tripId path string true "Trip ID"
// @Success      200 {string} string "CSV file"
// @Failure      404 {object} response.APIResponse
// @Router       /export/trip/{tripId}/csv [get]
func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	rep, err := h.service.Report(r.Context(), chi.URLParam(r, "tripId"), userID)
	if err != nil {
		writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(rep.Trip.Title, "csv"))
	if err := WriteCSV(w, rep); err != nil {
		// Headers are already out; the truncated body is the best signal left.
		return
	}
}

// PDF handles GET /export/trip/{tripId}/pdf
// @Summary      Download trip report as PDF
// @Description  Download a trip's expenses, per-person ledger, and settlement plan as a PDF document
// @Tags         export
// @Produce      application/pdf
// @Param        tripId path string true "Trip ID"
// @Success      200 {string} string "PDF file"
// @Failure      404 {object} response.APIResponse
// @Router       /export/trip/{tripId}/pdf [get]
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	rep, err := h.service.Report(r.Context(), chi.URLParam(r, "tripId"), userID)
	if err != nil {
		writeExportError(w, err)
		return
	}

	doc, err := BuildPDF(rep)
	if err != nil {
		response.InternalError(w, "Failed to build PDF report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(rep.Trip.Title, "pdf"))
	w.Write(doc)
}

// attachment builds a Content-Disposition value with a filename derived from
// the trip title
func attachment(title, ext string) string {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-"))
	if name == "" {
		name = "trip"
	}
	return fmt.Sprintf(`attachment; filename="%s-report.%s"`, name, ext)
}

func writeExportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, trip.ErrNotOwner):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Failed to build report")
	}
}
