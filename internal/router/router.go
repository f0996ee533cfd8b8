package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/estately/service-listing-go/internal/account"
	"github.com/estately/service-listing-go/internal/auth"
	"github.com/estately/service-listing-go/internal/category"
	"github.com/estately/service-listing-go/internal/favorite"
	"github.com/estately/service-listing-go/internal/listing"
	"github.com/estately/service-listing-go/internal/message"
	"github.com/estately/service-listing-go/internal/office"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts all HTTP handlers on a standard library
// http.ServeMux and returns the wrapped handler.
//
// Routes fall into three groups with distinct trust levels:
//   - public: registration, login and the read-only listings;
//   - legacy: gated by the direct-identifier strategy (the raw
//     Authorization header is a user id) — search and chat;
//   - management: gated by the bearer strategy (signed token) — the
//     resource CRUD and favorites.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, issuer *auth.TokenIssuer) http.Handler {
	mux := http.NewServeMux()

	accountHandler := account.NewHandler(db, issuer, logger)
	registry := accountHandler.Service()

	bearer := auth.Middleware(auth.NewBearerStrategy(issuer, registry), logger)
	legacy := auth.Middleware(auth.NewDirectIDStrategy(registry), logger)

	listingHandler := listing.NewHandler(db, logger)
	categoryHandler := category.NewHandler(db, logger)
	officeHandler := office.NewHandler(db, logger)
	messageHandler := message.NewHandler(db, logger)
	favoriteHandler := favorite.NewHandler(db, logger)

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// public
	mux.HandleFunc("POST /register", accountHandler.Register)
	mux.HandleFunc("POST /login", accountHandler.Login)
	mux.HandleFunc("GET /properties", listingHandler.List)
	mux.HandleFunc("GET /users", accountHandler.List)
	mux.HandleFunc("GET /estate-offices", officeHandler.List)

	// legacy group: raw user id in the Authorization header
	mux.Handle("GET /search", legacy(http.HandlerFunc(listingHandler.Search)))
	mux.Handle("POST /chat/{officeId}/{propertyId}", legacy(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /chat/{officeId}/{propertyId}", legacy(http.HandlerFunc(messageHandler.ListThread)))
	mux.Handle("PATCH /chat/{messageId}/read", legacy(http.HandlerFunc(messageHandler.MarkRead)))

	// management group: signed bearer token
	mux.Handle("POST /properties", bearer(http.HandlerFunc(listingHandler.Create)))
	mux.Handle("GET /properties/{id}", bearer(http.HandlerFunc(listingHandler.Get)))
	mux.Handle("PATCH /properties/{id}", bearer(http.HandlerFunc(listingHandler.Patch)))
	mux.Handle("DELETE /properties/{id}", bearer(http.HandlerFunc(listingHandler.Delete)))

	mux.Handle("GET /categories", bearer(http.HandlerFunc(categoryHandler.List)))
	mux.Handle("POST /categories", bearer(http.HandlerFunc(categoryHandler.Create)))
	mux.Handle("GET /categories/{id}", bearer(http.HandlerFunc(categoryHandler.Get)))
	mux.Handle("PATCH /categories/{id}", bearer(http.HandlerFunc(categoryHandler.Patch)))
	mux.Handle("DELETE /categories/{id}", bearer(http.HandlerFunc(categoryHandler.Delete)))

	mux.Handle("POST /estate-offices", bearer(http.HandlerFunc(officeHandler.Create)))
	mux.Handle("GET /estate-offices/{id}", bearer(http.HandlerFunc(officeHandler.Get)))
	mux.Handle("PATCH /estate-offices/{id}", bearer(http.HandlerFunc(officeHandler.Patch)))
	mux.Handle("DELETE /estate-offices/{id}", bearer(http.HandlerFunc(officeHandler.Delete)))

	mux.Handle("POST /users", bearer(http.HandlerFunc(accountHandler.Create)))
	mux.Handle("GET /users/{id}", bearer(http.HandlerFunc(accountHandler.Get)))
	mux.Handle("PATCH /users/{id}", bearer(http.HandlerFunc(accountHandler.Patch)))
	mux.Handle("DELETE /users/{id}", bearer(http.HandlerFunc(accountHandler.Delete)))

	mux.Handle("POST /favorites/{propertyId}", bearer(http.HandlerFunc(favoriteHandler.Add)))
	mux.Handle("DELETE /favorites/{propertyId}", bearer(http.HandlerFunc(favoriteHandler.Remove)))
	mux.Handle("GET /favorites/{userId}", bearer(http.HandlerFunc(favoriteHandler.List)))

	// wrap with security headers middleware then logging middleware
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux))
	return handler
}
