package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mcsat/communication"
	"mcsat/dimacs"
	"mcsat/engine"
	"mcsat/experiments/metrics"
	"mcsat/sat"
	"mcsat/searcher"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 64 << 20

type Server struct {
	router *mux.Router
	engine engine.Engine
	// options are applied before the settings of each request.
	options []searcher.Option
}

func New(options ...searcher.Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		engine:  engine.LocalEngine(),
		options: options,
	}
	s.router.HandleFunc(communication.SolvePath, s.handleSolve).Methods(http.MethodPost)
	s.router.HandleFunc(communication.HealthPath, s.handleHealth).Methods(http.MethodGet)
	s.router.Use(logRequests)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("serving on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req communication.SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		return
	}

	algorithm, err := engine.ParseAlgorithm(req.Algorithm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var inst *sat.Instance
	if req.Weighted {
		inst, err = dimacs.ReadWeighted(strings.NewReader(req.Instance))
	} else {
		inst, err = dimacs.Read(strings.NewReader(req.Instance))
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := append([]searcher.Option{}, s.options...)
	if req.Settings != "" {
		requested, err := searcher.ParseSettings([]byte(req.Settings))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		options = append(options, requested...)
	}
	// Each request counts its own search.
	options = append(options, searcher.WithMetrics(metrics.NewCollector()))

	outcome, err := s.engine.Solve(r.Context(), inst, algorithm, options...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(communication.SolveResponse{
		Algorithm:  outcome.Metric.Algorithm,
		Seed:       outcome.Metric.Seed,
		Score:      outcome.Score,
		Value:      outcome.Value,
		Solved:     outcome.Solved,
		Assignment: outcome.Assignment.Dimacs(),
		States:     outcome.States,
		Rollouts:   outcome.Metric.Rollouts,
		Flips:      outcome.Metric.Flips,
		Commits:    outcome.Metric.Commits,
		DurationMs: outcome.Metric.Duration.Milliseconds(),
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Warn().Err(err).Msg("rejected solve request")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(communication.ErrorResponse{Error: err.Error()})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Msgf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
	})
}
