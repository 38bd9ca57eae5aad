package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkrawiec/netplanner/internal/auth"
	"github.com/mkrawiec/netplanner/internal/domain"
)

// HealthChecker is what readyz asks of the reservation store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	Health        HealthChecker
	Service       domain.PlannerService
	Authenticator auth.Authenticator
}

func NewAPI(logger *slog.Logger, health HealthChecker, service domain.PlannerService, authenticator auth.Authenticator) *API {
	return &API{
		Logger:        logger,
		Health:        health,
		Service:       service,
		Authenticator: authenticator,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.HandleFunc("POST /api/v1/allocations", a.handleAllocate)
	mux.HandleFunc("POST /api/v1/allocations/import", a.handleImportSheet)
	mux.HandleFunc("POST /api/v1/classifications", a.handleClassify)
	mux.HandleFunc("POST /api/v1/equipment", a.handleEquipment)
	mux.HandleFunc("GET /api/v1/reservations", a.handleListReservations)
	mux.HandleFunc("GET /api/v1/reservations/{id}", a.handleGetReservation)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return a.authMiddleware(mux)
}
