package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups the API endpoints served by NewRouter.
type Handlers struct {
	Projection  *ProjectionHandler
	Sensitivity *SensitivityHandler
	Settlement  *SettlementHandler
}

// RouterOptions carries the access-control settings of the /hei routes.
type RouterOptions struct {
	// JWTSecret enables bearer-token auth when non-empty.
	JWTSecret string
	// SweepCost is the token cost of one sensitivity sweep. Zero means
	// DefaultSweepCost.
	SweepCost int
}

// NewRouter wires the API routes. /healthz is public; every /hei route is
// rate limited per client IP at its own token cost and, when a JWT secret is
// set, requires a bearer token.
func NewRouter(h Handlers, limiter *RateLimiter, opts RouterOptions, log *logrus.Logger) *mux.Router {
	sweepCost := opts.SweepCost
	if sweepCost <= 0 {
		sweepCost = DefaultSweepCost
	}

	router := mux.NewRouter()
	router.Use(RequestLogMiddleware(log))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	auth := AuthMiddleware(opts.JWTSecret)
	guard := func(cost int, fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, cost, log)(auth(fn))
	}

	api := router.PathPrefix("/hei").Subrouter()
	api.Handle("/projection", guard(ProjectionCost, h.Projection.CreateProjection)).Methods(http.MethodPost)
	api.Handle("/projection", guard(ProjectionCost, h.Projection.GetProjection)).Methods(http.MethodGet)
	api.Handle("/sensitivity", guard(sweepCost, h.Sensitivity.Sweep)).Methods(http.MethodPost)
	api.Handle("/settlement", guard(SettlementCost, h.Settlement.QuoteSettlement)).Methods(http.MethodPost)

	return router
}
