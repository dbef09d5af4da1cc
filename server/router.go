package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GymRoutes serves gym search and health checks.
type GymRoutes interface {
	SearchGyms(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// PriceRoutes serves live price submissions.
type PriceRoutes interface {
	SubmitPrices(w http.ResponseWriter, r *http.Request)
	GetPrices(w http.ResponseWriter, r *http.Request)
	ListPricedGyms(w http.ResponseWriter, r *http.Request)
}

// HoneypotRoutes serves the bait fragment, the violation sink and the link trap.
type HoneypotRoutes interface {
	BaitHandler(w http.ResponseWriter, r *http.Request)
	ViolationHandler(w http.ResponseWriter, r *http.Request)
	TrapHandler(w http.ResponseWriter, r *http.Request)
}

// PlotRoutes serves debug plots.
type PlotRoutes interface {
	PlotGyms(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	gymHandler      GymRoutes
	priceHandler    PriceRoutes
	honeypotHandler HoneypotRoutes
	plotHandler     PlotRoutes
	admission       mux.MiddlewareFunc
	debug           bool
	router          *mux.Router
}

// NewRouter creates a router with the app’s routes. admission guards the
// search endpoint; debug enables the /debug routes.
func NewRouter(
	gymHandler GymRoutes,
	priceHandler PriceRoutes,
	honeypotHandler HoneypotRoutes,
	plotHandler PlotRoutes,
	admission mux.MiddlewareFunc,
	debug bool,
	router *mux.Router) *Router {
	return &Router{
		gymHandler:      gymHandler,
		priceHandler:    priceHandler,
		honeypotHandler: honeypotHandler,
		plotHandler:     plotHandler,
		admission:       admission,
		debug:           debug,
		router:          router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?lat={latitude(float)}&lng={longitude(float)}[&query&radius&filter&type&max_distance&price_level&min_rating&sort]
	var search http.Handler = http.HandlerFunc(r.gymHandler.SearchGyms)
	if r.admission != nil {
		search = r.admission(search)
	}
	r.router.Handle("/v1/gyms/search", search).Methods("GET")

	r.router.HandleFunc("/v1/gyms/{id}/prices", r.priceHandler.SubmitPrices).Methods("POST")
	r.router.HandleFunc("/v1/gyms/{id}/prices", r.priceHandler.GetPrices).Methods("GET")
	r.router.HandleFunc("/v1/prices", r.priceHandler.ListPricedGyms).Methods("GET")

	r.router.HandleFunc("/honeypot.html", r.honeypotHandler.BaitHandler).Methods("GET")
	r.router.HandleFunc("/v1/security/violation", r.honeypotHandler.ViolationHandler).Methods("POST")
	r.router.HandleFunc("/v1/security/trap", r.honeypotHandler.TrapHandler).Methods("GET")

	r.router.HandleFunc("/ping", r.gymHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if r.debug {
		r.router.HandleFunc("/debug/gyms/plot", r.plotHandler.PlotGyms).Methods("GET")
	}
}
