package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// Pinger is a dependency checked by /healthz (db pool, redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type locationResolver interface {
	LocationFor(ctx context.Context, r *http.Request) *time.Location
}

type Handler struct {
	versionInfo string
	locations   locationResolver
	deps        map[string]Pinger
	now         func() time.Time
}

type whereAmIResponse struct {
	IP       string   `json:"ip"`
	Timezone string   `json:"timezone"`
	Today    pkg.Date `json:"today"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Deps   map[string]string `json:"deps"`
}

func NewHandler(versionInfo string, locations locationResolver, deps map[string]Pinger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		locations:   locations,
		deps:        deps,
		now:         time.Now,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/whereami", handler.handleWhereAmI).Methods("GET").Name("whereami")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/healthz", handler.handleHealth).Methods("GET").Name("healthz")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "fitplan")
}

// handleWhereAmI shows which timezone and day the server assumes for the caller.
func (handler *Handler) handleWhereAmI(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.whereami")
	defer span.End()

	resp := whereAmIResponse{}
	if ip, err := pkg.ReadUserIP(r); err != nil {
		log.Debugf("whereami, read user ip: %s", err)
	} else if ip != nil {
		resp.IP = ip.String()
	} else {
		resp.IP = "local"
	}

	loc := time.UTC
	if handler.locations != nil {
		loc = handler.locations.LocationFor(ctx, r)
	}
	resp.Timezone = loc.String()
	resp.Today = pkg.DateOf(handler.now().In(loc))

	writeJSON(w, resp, http.StatusOK)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthz")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Deps: make(map[string]string, len(handler.deps))}
	status := http.StatusOK
	for name, dep := range handler.deps {
		if err := dep.Ping(ctx); err != nil {
			log.Errorf("healthz: %s: %s", name, err)
			resp.Deps[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			span.SetStatus(codes.Error, name+" down")
			continue
		}
		resp.Deps[name] = "up"
	}

	writeJSON(w, resp, status)
}
