package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iipratte/stuber/internal/directory"
	"github.com/iipratte/stuber/internal/market"
)

// Server is the HTTP surface: user directory CRUD backed by Postgres and
// the in-memory ride marketplace.
type Server struct {
	directory *directory.Service
	market    *market.Store
	logger    *slog.Logger
	mux       *mux.Router
	handler   http.Handler
}

func NewServer(dir *directory.Service, store *market.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{directory: dir, market: store, logger: logger, mux: mux.NewRouter()}
	s.registerMiddleware()
	s.routes()
	// CORS sits outside the router so preflight requests are answered even
	// though no route registers the OPTIONS method.
	s.handler = s.corsMiddleware(s.mux)
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/users", s.handleListUsers).Methods("GET")
	s.mux.HandleFunc("/api/users/{id:[0-9]+}", s.handleGetUser).Methods("GET")
	s.mux.HandleFunc("/api/users/{id:[0-9]+}/username", s.handleUpdateUsername).Methods("PUT")

	s.mux.HandleFunc("/api/rides", s.handleListRides).Methods("GET")
	s.mux.HandleFunc("/api/rides", s.handleCreateRide).Methods("POST")
	s.mux.HandleFunc("/api/rides/{id:[0-9]+}/bookings", s.handleRequestBooking).Methods("POST")

	s.mux.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.handler.ServeHTTP(w, r) }

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
