package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/basketd/internal/api/http/handler"
	"github.com/dtroode/basketd/internal/api/http/middleware"
	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// Services are the collaborators the HTTP routes call into.
// Resetter may be nil; the reset route is only mounted in debug mode.
type Services struct {
	Baskets  handler.BasketService
	Catalog  handler.CatalogService
	Verifier middleware.CredentialVerifier
	Resetter handler.Resetter
	Pinger   handler.Pinger
}

// Router builds the HTTP route table of the basket service.
type Router struct {
	services       Services
	contextManager model.ContextManager
	logger         *logger.Logger
	debug          bool
}

// New creates a new HTTP Router instance.
func New(services Services, contextManager model.ContextManager, logger *logger.Logger, debug bool) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
		debug:          debug,
	}
}

// Register returns the root handler with all routes and middleware attached.
func (r *Router) Register() http.Handler {
	m := mux.NewRouter()

	r.registerBasketRoutes(m)
	r.registerProductRoutes(m)
	r.registerSystemRoutes(m)

	// Wrapped outside mux so unmatched routes are covered as well.
	logging := middleware.NewLogging(r.logger)
	recoverer := middleware.Recover(r.logger)
	return middleware.RequestID(logging.Handle(recoverer(m)))
}

func (r *Router) registerBasketRoutes(m *mux.Router) {
	h := handler.NewBasket(r.services.Baskets, r.contextManager, r.logger, r.debug)
	auth := middleware.NewAuthenticate(r.services.Verifier, r.contextManager, r.logger)

	m.HandleFunc("/baskets", h.List).Methods(http.MethodGet)
	m.Handle("/baskets", auth.Require(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	m.Handle("/baskets/create", auth.Require(http.HandlerFunc(h.Create))).Methods(http.MethodGet)
	m.Handle("/baskets/{bid:[0-9]+}", auth.Require(http.HandlerFunc(h.AddItem))).Methods(http.MethodPost)
}

func (r *Router) registerProductRoutes(m *mux.Router) {
	h := handler.NewProduct(r.services.Catalog, r.logger, r.debug)

	m.HandleFunc("/products", h.List).Methods(http.MethodGet)
	m.HandleFunc("/products/{pid:[0-9]+}", h.Get).Methods(http.MethodGet)
}

func (r *Router) registerSystemRoutes(m *mux.Router) {
	var resetter handler.Resetter
	if r.debug {
		resetter = r.services.Resetter
	}
	h := handler.NewSystem(resetter, r.services.Pinger, r.logger, r.debug)

	m.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if resetter != nil {
		m.HandleFunc("/debug/db/reset", h.Reset).Methods(http.MethodGet)
	}
}
