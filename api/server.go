package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"studio-quote/api/envelope"
	"studio-quote/core/catalog"
	"studio-quote/core/estimator"
	"studio-quote/core/types"
	"studio-quote/internal/errors"
	"studio-quote/internal/logging"
	"studio-quote/internal/metrics"
)

const defaultMaxBodyBytes = 64 << 10

type contextKey struct{}

// Options configures a Server
type Options struct {
	Version string
	Catalog *catalog.Catalog

	// Metrics enables GET /metrics and request instrumentation when set
	Metrics *metrics.Metrics

	// Audit receives one entry per priced quote
	Audit envelope.AuditLogger

	MaxBodyBytes int64
}

// Server is the API server
type Server struct {
	mux      *http.ServeMux
	version  string
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	audit    envelope.AuditLogger
	validate *validator.Validate
	maxBody  int64
	log      *zap.Logger
}

// NewServer creates a new API server. A nil catalog serves the built-in rate card.
func NewServer(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	log := logging.Named("api")
	if opts.Audit == nil {
		opts.Audit = envelope.NewZapAuditLogger(log.Named("audit"))
	}

	s := &Server{
		mux:      http.NewServeMux(),
		version:  opts.Version,
		catalog:  opts.Catalog,
		metrics:  opts.Metrics,
		audit:    opts.Audit,
		validate: newValidator(),
		maxBody:  opts.MaxBodyBytes,
		log:      log,
	}

	s.registerRoutes()
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		_, err := types.ParseServiceType(fl.Field().String())
		return err == nil
	})
	return v
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.handle("POST /quote", "/quote", s.handleQuote)
	s.handle("GET /catalog", "/catalog", s.handleCatalog)
	s.handle("GET /health", "/health", s.handleHealth)
	s.handle("GET /version", "/version", s.handleVersion)

	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// handle wraps h with request ids, access logging and metrics
func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r.WithContext(context.WithValue(r.Context(), contextKey{}, requestID)))

		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, rec.status, elapsed)
		}
		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, requestID, "BODY_TOO_LARGE", err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		s.writeError(w, requestID, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.writeValidationError(w, requestID, err)
		return
	}

	env, err := envelope.Normalize(envelope.RawInput{
		ServiceType: req.ServiceType,
		ProjectSize: req.ProjectSize,
		SongCount:   req.SongCount,
		AddOns:      req.AddOns,
	})
	if err != nil {
		s.writeTypedError(w, requestID, err)
		return
	}

	audit := envelope.NewAuditEntry(env, requestID, clientIP(r), r.UserAgent())

	q := estimator.Compute(s.catalog, env.Selection)
	for _, warn := range q.Warnings {
		s.log.Warn("degraded lookup",
			zap.String("request_id", requestID),
			zap.String("kind", string(warn.Kind)),
			zap.String("key", warn.Key),
		)
		if s.metrics != nil {
			s.metrics.DegradedLookup(string(warn.Kind))
		}
	}
	if s.metrics != nil {
		s.metrics.QuoteComputed(env.Selection.Service.String())
	}

	resp := &QuoteResponse{
		RequestID:      requestID,
		Quote:          q,
		FormattedTotal: q.FormattedTotal(),
		Summary:        q.Summary(),
		Adjustments:    env.Adjustments,
		Metadata: &ResponseMetadata{
			InputHash:     env.InputHash,
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}

	audit.Total = q.Total.String()
	audit.Warnings = len(q.Warnings)
	audit.SetDuration(time.Since(start))
	if err := s.audit.Log(audit); err != nil {
		s.log.Error("audit log failed", zap.Error(err))
	}

	s.writeJSON(w, resp, http.StatusOK)
}

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp := &CatalogResponse{
		RequestID: requestIDFrom(r.Context()),
		Currency:  s.catalog.Currency,
		Services:  []ServiceRates{},
		AddOns:    s.catalog.AddOns(),
	}
	for _, svc := range s.catalog.Services() {
		table, _ := s.catalog.Rates(svc)
		entry := ServiceRates{Service: svc, DisplayName: svc.DisplayName()}
		for _, rate := range table.Rates() {
			entry.Rates = append(entry.Rates, RateEntry{Rate: rate, Songs: catalog.SongRangeFor(rate.Key)})
		}
		resp.Services = append(resp.Services, entry)
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.catalog.Stats()
	s.writeJSON(w, map[string]interface{}{
		"status":   "healthy",
		"version":  s.version,
		"services": stats.Services,
		"rates":    stats.Rates,
		"add_ons":  stats.AddOns,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "studio-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	s.writeJSON(w, &ErrorResponse{
		RequestID: requestID,
		Error:     ErrorDetail{Code: code, Message: message},
	}, status)
}

func (s *Server) writeTypedError(w http.ResponseWriter, requestID string, err error) {
	t := errors.TypeOf(err)
	s.writeError(w, requestID, string(t), err.Error(), statusFor(t))
}

func (s *Server) writeValidationError(w http.ResponseWriter, requestID string, err error) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		s.writeError(w, requestID, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	s.writeJSON(w, &ErrorResponse{
		RequestID: requestID,
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Fields:  fields,
		},
	}, http.StatusBadRequest)
}

// statusFor maps an error type to an HTTP status
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInput, errors.TypeParsing:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
