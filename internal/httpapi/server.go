package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hellod/internal/app"
	"hellod/internal/hello"
	"hellod/internal/store"
	"hellod/internal/userapi"
	"hellod/internal/view"
	"hellod/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	State(ctx context.Context) (*app.State, error)
	Dispatch(ctx context.Context, a store.Action) (*app.State, error)
	LoadUser(ctx context.Context, id int) (types.User, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip (behind a trusted proxy only), recoverer
	r.Use(middleware.RequestID)
	if trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.State(r.Context())
		if err != nil {
			writeServiceError(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, app.Response(st))
	})

	r.Post("/actions", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		var req types.ActionRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		a, err := app.DecodeAction(req)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			logEnd(r, lvl, "dispatch", http.StatusBadRequest, start, err)
			return
		}
		st, err := svc.Dispatch(r.Context(), a)
		if err != nil {
			status := writeServiceError(w, err, http.StatusInternalServerError)
			logEnd(r, lvl, "dispatch", status, start, err)
			return
		}
		writeJSON(w, app.Response(st))
		logEnd(r, lvl, "dispatch", http.StatusOK, start, nil)
	})

	r.Group(func(r chi.Router) {
		if loadRateRPS > 0 {
			r.Use(newClientLimiter(loadRateRPS, loadRateBurst).Handler)
		}
		r.Post("/users/{id}/load", func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lvl := requestLogLevel(r)
			raw := chi.URLParam(r, "id")
			id, err := strconv.Atoi(raw)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid user id: "+strconv.Quote(raw))
				logEnd(r, lvl, "load user", http.StatusBadRequest, start, err)
				return
			}
			// Join server base context with request context so shutdown cancels work too.
			ctx, cancel := joinContexts(serverBaseCtx, r.Context())
			defer cancel()
			if loadTimeout > 0 {
				var tcancel context.CancelFunc
				ctx, tcancel = context.WithTimeout(ctx, loadTimeout)
				defer tcancel()
			}
			user, err := svc.LoadUser(ctx, id)
			if err != nil {
				// Client went away or we are shutting down: nothing to answer.
				if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
					return
				}
				status := writeServiceError(w, err, http.StatusBadGateway)
				logEnd(r, lvl, "load user", status, start, err)
				return
			}
			st, err := svc.State(r.Context())
			if err != nil {
				status := writeServiceError(w, err, http.StatusInternalServerError)
				logEnd(r, lvl, "load user", status, start, err)
				return
			}
			writeJSON(w, types.LoadUserResponse{User: user, State: app.Response(st)})
			logEnd(r, lvl, "load user", http.StatusOK, start, nil)
		})
	})

	r.Get("/views/hello", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.State(r.Context())
		if err != nil {
			writeServiceError(w, err, http.StatusInternalServerError)
			return
		}
		props := view.SelectHello(st)
		text, err := view.Greeting(props)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, types.ViewResponse{View: "hello", Text: text, Props: props})
	})

	r.Get("/views/login", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.State(r.Context())
		if err != nil {
			writeServiceError(w, err, http.StatusInternalServerError)
			return
		}
		props := view.SelectLogin(st)
		writeJSON(w, types.ViewResponse{View: "login", Text: view.LoginText(props), Props: props})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSONBody enforces the content type and body limit and decodes into v.
// On failure it has already written the response.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies get the same answer so the limit is not leaked.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// statusFor maps service errors onto HTTP statuses; fallback is used for
// errors no rule recognizes.
func statusFor(err error, fallback int) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case userapi.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errors.Is(err, app.ErrUnknownActionType), store.IsInvalidAction(err):
		return http.StatusBadRequest
	case store.IsReentrant(err):
		return http.StatusConflict
	case errors.Is(err, store.ErrLoopClosed), errors.Is(err, hello.ErrNoUserLoader):
		return http.StatusServiceUnavailable
	}
	return fallback
}

func writeServiceError(w http.ResponseWriter, err error, fallback int) int {
	status := statusFor(err, fallback)
	writeJSONError(w, status, err.Error())
	return status
}
