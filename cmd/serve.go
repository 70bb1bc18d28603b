package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/opterra-labs/opterra-cli/internal/engine"
	"github.com/opterra-labs/opterra-cli/internal/model"
	"github.com/opterra-labs/opterra-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(newEngine(), st),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			grace := time.Duration(cfg.Server.ShutdownGraceS) * time.Second
			shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter assembles the API routes. Split out from the command so tests
// can drive the handlers directly.
func newRouter(eng *engine.Engine, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	limiter := rate.NewLimiter(rate.Limit(float64(cfg.Server.AssessPerMin)/60.0), cfg.Server.AssessBurst)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(rateLimit(limiter)).Post("/assess", handleAssess(eng, st))
		r.Get("/assessments", handleListAssessments(st))
		r.Get("/assessments/{id}", handleGetAssessment(st))
		r.Delete("/assessments/{id}", handleDeleteAssessment(st))
	})

	return r
}

// rateLimit rejects requests beyond the configured assessment rate.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type assessRequest struct {
	Label  string               `json:"label"`
	Save   bool                 `json:"save"`
	Inputs model.ForensicInputs `json:"inputs"`
}

type assessResponse struct {
	ID     string              `json:"id,omitempty"`
	Result model.OpterraResult `json:"result"`
}

func handleAssess(eng *engine.Engine, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !req.Inputs.Fuel.IsValid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown fuel type %q", req.Inputs.Fuel))
			return
		}

		result := eng.Evaluate(req.Inputs, time.Now())

		resp := assessResponse{Result: result}
		if req.Save {
			label := req.Label
			if label == "" {
				label = string(req.Inputs.Fuel)
			}
			a, err := st.SaveAssessment(r.Context(), label, req.Inputs, result)
			if err != nil {
				zap.L().Error("save assessment failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to save assessment")
				return
			}
			resp.ID = a.ID
		}

		zap.L().Info("assessment served",
			zap.String("fuel", string(req.Inputs.Fuel)),
			zap.String("action", string(result.Verdict.Action)),
		)
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleListAssessments(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := store.Filter{
			Fuel:   model.FuelType(strings.ToUpper(q.Get("fuel"))),
			Action: model.VerdictAction(strings.ToUpper(q.Get("action"))),
		}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			filter.Limit = n
		}

		assessments, err := st.ListAssessments(r.Context(), filter)
		if err != nil {
			zap.L().Error("list assessments failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list assessments")
			return
		}
		if assessments == nil {
			assessments = []model.Assessment{}
		}
		writeJSON(w, http.StatusOK, assessments)
	}
}

func handleGetAssessment(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := st.GetAssessment(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func handleDeleteAssessment(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteAssessment(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
