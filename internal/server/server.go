package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"CardDesk/internal/desk"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

// Server exposes the buying desk over a JSON REST API.
type Server struct {
	router *mux.Router
	server *http.Server
	h      *handlers
}

// NewServer wires the API around the desk manager, settings manager and recorder.
func NewServer(host string, port int, dm *desk.Manager, sm *settings.Manager, rec recorder.Recorder) *Server {
	router := mux.NewRouter()
	s := &Server{
		router: router,
		h:      &handlers{desk: dm, settings: sm, recorder: rec},
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.h.health).Methods("GET")

	api.HandleFunc("/settings", s.h.getSettings).Methods("GET")
	api.HandleFunc("/settings", s.h.updateSettings).Methods("PUT")

	api.HandleFunc("/sessions", s.h.openSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.h.getSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/scans", s.h.addScan).Methods("POST")
	api.HandleFunc("/sessions/{id}/close", s.h.closeSession).Methods("POST")

	api.HandleFunc("/scans/{id}/resolve", s.h.resolveScan).Methods("POST")

	api.HandleFunc("/contacts", s.h.listContacts).Methods("GET")
	api.HandleFunc("/contacts", s.h.createContact).Methods("POST")
	api.HandleFunc("/contacts/{id}", s.h.getContact).Methods("GET")
}

// Router returns the configured router, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] http server listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] http server: %v", err)
		}
	}()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[INFO] %s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
