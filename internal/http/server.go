package http

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/avatar"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/middleware/ratelimit"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/middleware/security"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/middleware/trace"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/services"
	appweb "github.com/meheraj786/fortunate-business-management-sub001/web"
)

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// Options configures optional server behaviour.
type Options struct {
	Logger         *applog.Logger
	AvatarBaseURL  string
	TrustedProxies []string
	Location       *time.Location
	RateLimit      ratelimit.Config
	ReadyChecks    map[string]ReadyCheck
}

type Server struct {
	http.Server
	templates *template.Template
	records   *services.RecordService
	avatars   avatar.URLBuilder
	logger    *applog.Logger
	detector  *security.Detector
	limiter   *ratelimit.Limiter
	tracer    *trace.Middleware
	location  *time.Location
	ready     map[string]ReadyCheck
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server.
func NewServer(addr string, records *services.RecordService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	detector, err := security.NewDetector(opts.TrustedProxies)
	if err != nil {
		logger.Warn("Ignoring trusted proxies", applog.FieldError, err)
		detector, _ = security.NewDetector(nil)
	}

	rl := opts.RateLimit
	if rl.RequestsPerWindow <= 0 {
		rl = ratelimit.DefaultConfig()
	}

	s := &Server{
		records:  records,
		avatars:  avatar.URLBuilder{Base: opts.AvatarBaseURL},
		logger:   logger,
		detector: detector,
		limiter:  ratelimit.NewLimiter(rl),
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),
		location: loc,
		ready:    opts.ReadyChecks,
		started:  time.Now(),
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /accounts", s.handleAccounts)
	mux.HandleFunc("POST /accounts/close", s.handleCloseCash)

	mux.HandleFunc("GET /sales", s.handleSales)
	mux.HandleFunc("GET /sales/new", s.handleNewSale)
	mux.HandleFunc("GET /sales/edit", s.handleEditSale)
	mux.HandleFunc("POST /sales", s.handleSubmitSale)

	mux.HandleFunc("GET /team", s.handleTeam)
	mux.HandleFunc("GET /team/new", s.handleNewTeamMember)
	mux.HandleFunc("GET /team/edit", s.handleEditTeamMember)
	mux.HandleFunc("POST /team", s.handleSubmitTeamMember)

	mux.HandleFunc("GET /avatars/{file}", s.handleAvatar)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited, http.MethodPost)

	var handler http.Handler = mux
	handler = limited(handler)
	handler = s.detector.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)
	handler = applog.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) today() civil.Date { return core.Today(s.location) }

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	NewHTMXResponse().
		Status(http.StatusTooManyRequests).
		Header("Retry-After", "60").
		TriggerErrorNotification("Too many requests, please slow down").
		Write(w)
}

// render executes a named template into a buffer so a failed render never
// leaves a half-written page.
func (s *Server) render(r *http.Request, name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentTemplate).ErrorContext(r.Context(), "Template render failed",
			applog.FieldTemplate, name,
			applog.FieldError, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// writePage renders name and writes it with status.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	body, err := s.render(r, name, data)
	if err != nil {
		InternalServerError("Unable to render page").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(body).Write(w)
}

// Shutdown stops background cleanup and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
