package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mkrawiec/netplanner/internal/auth"
	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/sheet"
)

// maxSheetSize bounds uploaded device sheets.
const maxSheetSize = 1 << 20

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "registry unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "registry ping failed", "err", err.Error())
		http.Error(w, "registry unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Allocate a subnet for a device batch
// @Tags allocations
// @Accept json
// @Produce json
// @Param batch body AllocateRequest true "Device batch"
// @Success 201 {object} AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/allocations [post]
func (a *API) handleAllocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[AllocateRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling batch from request", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "bad request")
		return
	}
	a.Logger.DebugContext(ctx, "allocation requested", "rows", len(req.Rows), "label", req.Label, "user", requestUser(ctx))

	result, err := a.Service.Allocate(ctx, req.toInput())
	if err != nil {
		a.respondAllocateError(w, r, err)
		return
	}

	if err := encode(w, r, http.StatusCreated, allocationToResponse(result)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

// @Summary Allocate a subnet from an uploaded sheet
// @Tags allocations
// @Accept mpfd
// @Produce json
// @Param sheet formData file true "Device sheet (CSV)"
// @Param label formData string false "Label recorded on the reservation"
// @Success 201 {object} AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/allocations/import [post]
func (a *API) handleImportSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(maxSheetSize); err != nil {
		a.Logger.ErrorContext(ctx, "parsing multipart form", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	file, _, err := r.FormFile("sheet")
	if err != nil {
		a.Logger.ErrorContext(ctx, "missing sheet in form", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "missing sheet file")
		return
	}
	defer file.Close()

	rows, err := sheet.ParseRows(file)
	if err != nil {
		a.Logger.ErrorContext(ctx, "parsing uploaded sheet", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	a.Logger.DebugContext(ctx, "sheet import requested", "rows", len(rows), "user", requestUser(ctx))

	result, err := a.Service.Allocate(ctx, domain.AllocateInput{
		Label: r.FormValue("label"),
		Rows:  rows,
	})
	if err != nil {
		a.respondAllocateError(w, r, err)
		return
	}

	if err := encode(w, r, http.StatusCreated, allocationToResponse(result)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

// @Summary Classify a device batch without allocating
// @Tags allocations
// @Accept json
// @Produce json
// @Param batch body ClassifyRequest true "Device batch"
// @Success 200 {array} ClassifiedRowResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/classifications [post]
func (a *API) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[ClassifyRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling batch from request", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	preview := a.Service.Preview(toDeviceRows(req.Rows))

	if err := encode(w, r, http.StatusOK, previewToResponse(preview)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

// @Summary Derive the equipment bill for a device batch
// @Tags equipment
// @Accept json
// @Produce json
// @Param batch body EquipmentRequest true "Device batch and feature flags"
// @Success 200 {array} EquipmentItemResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/equipment [post]
func (a *API) handleEquipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[EquipmentRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling batch from request", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	items := a.Service.DeriveEquipment(toDeviceRows(req.Rows), req.toConfig())

	if err := encode(w, r, http.StatusOK, equipmentToResponse(items)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

// @Summary List reservations
// @Tags reservations
// @Produce json
// @Success 200 {array} ReservationResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reservations [get]
func (a *API) handleListReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reservations, err := a.Service.ListReservations(ctx)
	if err != nil {
		a.Logger.ErrorContext(ctx, "reading reservations from registry", "err", err.Error())
		status := http.StatusInternalServerError
		message := "internal server error"
		if errors.Is(err, domain.ErrRegistryCorrupt) {
			message = "registry corrupt"
		}
		a.respondError(w, r, status, message)
		return
	}

	if err := encode(w, r, http.StatusOK, reservationsToResponse(reservations)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

// @Summary Get reservation by id
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation id"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reservations/{id} [get]
func (a *API) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathUUID(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "invalid reservation id", "id", r.PathValue("id"), "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	reservation, err := a.Service.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.respondError(w, r, http.StatusNotFound, "reservation not found")
			return
		}
		a.Logger.ErrorContext(ctx, "reading reservation from registry", "id", id.String(), "err", err.Error())
		a.respondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := encode(w, r, http.StatusOK, reservationToResponse(reservation)); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

func (a *API) respondAllocateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.Logger.DebugContext(ctx, "rejected allocation input", "err", err.Error())
		a.respondError(w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrPoolExhausted):
		a.Logger.ErrorContext(ctx, "address pool exhausted", "err", err.Error())
		a.respondError(w, r, http.StatusConflict, "address pool exhausted")
	case errors.Is(err, domain.ErrStoreConflict):
		a.Logger.ErrorContext(ctx, "registry conflict persisted across retries", "err", err.Error())
		a.respondError(w, r, http.StatusConflict, "registry busy")
	case errors.Is(err, domain.ErrRegistryCorrupt):
		a.Logger.ErrorContext(ctx, "registry corrupt", "err", err.Error())
		a.respondError(w, r, http.StatusInternalServerError, "registry corrupt")
	default:
		a.Logger.ErrorContext(ctx, "allocation failed", "err", err.Error())
		a.respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := encode(w, r, status, ErrorResponse{Error: message}); err != nil {
		a.Logger.ErrorContext(r.Context(), "cant respond to client", "err", err.Error())
	}
}

func requestUser(ctx context.Context) string {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return "anonymous"
	}
	if principal.Username != "" {
		return principal.Username
	}
	return principal.Subject
}
