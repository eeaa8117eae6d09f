package httpserver

import (
	"log/slog"
	"net/http"

	claimservice "claimerapi/contexts/snapshot-claims/claim-service"
	redistributionservice "claimerapi/contexts/snapshot-claims/redistribution-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "claimerapi/internal/platform/httpserver/docs"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	claims         claimservice.Module
	redistribution redistributionservice.Module
}

func New(
	claims claimservice.Module,
	redistribution redistributionservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		claims:         claims,
		redistribution: redistribution,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest-driven tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /verify-snapshot", s.handleVerifySnapshot)
	s.mux.HandleFunc("GET /check-balance", s.handleCheckBalance)
	s.mux.HandleFunc("GET /verify-address", s.handleVerifyAddress)
	s.mux.HandleFunc("GET /get-blockheight", s.handleBlockHeight)
	s.mux.HandleFunc("GET /total-claimed", s.handleTotalClaimed)
	s.mux.HandleFunc("GET /claims", s.handleListClaims)
	s.mux.HandleFunc("GET /redistribution", s.handleRedistribution)
	s.mux.HandleFunc("GET /download-csv", s.handleDownloadCSV)
}
