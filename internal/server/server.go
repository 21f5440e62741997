package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"accessible-route-planner/internal/config"
	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/geocoding"
	"accessible-route-planner/internal/graph"
	"accessible-route-planner/internal/handlers"
	"accessible-route-planner/internal/planner"
	"accessible-route-planner/internal/sqlite"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         database.DataStore
	listener   net.Listener
	addr       string
}

// New creates and initializes a new server (does not start it)
func New(cfg *config.Config) (*Server, error) {
	log.Printf("Initializing data store...")
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	provider := graph.NewOverpassProvider(cfg.OverpassURL, cfg.HTTPTimeout)
	provider.SetSearchRadius(int(cfg.SearchRadius))

	routePlanner := planner.New(provider)
	geocoder := geocoding.NewNominatimGeocoder()

	handler := &handlers.Handler{
		DB:       db,
		Geocoder: geocoder,
		Planner:  routePlanner,
		Sessions: handlers.NewSessionStore(routePlanner),
	}

	router := setupRoutes(handler)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      loggingMiddleware(corsMiddleware(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		db:         db,
		addr:       httpServer.Addr,
	}, nil
}

// setupRoutes configures all HTTP routes
func setupRoutes(handler *handlers.Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", handler.HandleHealth).Methods(http.MethodGet)

	api.HandleFunc("/routes/plan", handler.HandlePlanRoute).Methods(http.MethodPost)
	api.HandleFunc("/routes/preview", handler.HandlePreviewRoutes).Methods(http.MethodPost)
	api.HandleFunc("/track", handler.HandleTrack).Methods(http.MethodGet)

	api.HandleFunc("/geocode/search", handler.HandleAddressSearch).Methods(http.MethodGet)
	api.HandleFunc("/geocode/reverse", handler.HandleReverseGeocode).Methods(http.MethodGet)

	api.HandleFunc("/profiles/{userID}", handler.HandleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{userID}", handler.HandlePutProfile).Methods(http.MethodPut)
	api.HandleFunc("/profiles/{userID}", handler.HandleDeleteProfile).Methods(http.MethodDelete)

	api.HandleFunc("/history", handler.HandleListHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", handler.HandleClearHistory).Methods(http.MethodDelete)

	api.HandleFunc("/places", handler.HandleListPlaces).Methods(http.MethodGet)
	api.HandleFunc("/places", handler.HandleCreatePlace).Methods(http.MethodPost)
	api.HandleFunc("/places/{id}", handler.HandleUpdatePlace).Methods(http.MethodPut)
	api.HandleFunc("/places/{id}", handler.HandleDeletePlace).Methods(http.MethodDelete)

	return r
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	log.Printf("Starting server on %s", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return actualAddr, nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, lrw.statusCode, duration)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Only allow localhost origins for local development clients
		if origin == "" ||
			strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:") {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
