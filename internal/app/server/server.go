package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"emimet/internal/db"
	"emimet/internal/domain/auth"
	"emimet/internal/domain/employee"
	"emimet/internal/domain/org"
	"emimet/internal/domain/salary"
	"emimet/internal/domain/workday"
	"emimet/internal/platform/config"
	"emimet/internal/platform/metrics"
	"emimet/internal/transport/http/api"
	authhandler "emimet/internal/transport/http/handlers/auth"
	employeehandler "emimet/internal/transport/http/handlers/employees"
	orghandler "emimet/internal/transport/http/handlers/org"
	reporthandler "emimet/internal/transport/http/handlers/reports"
	uploadhandler "emimet/internal/transport/http/handlers/uploads"
	userhandler "emimet/internal/transport/http/handlers/users"
	workdayhandler "emimet/internal/transport/http/handlers/workdays"
	"emimet/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, seeds and builds the router. Close releases
// the pool.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, DB: pool}
	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config

	authStore := auth.NewStore(a.DB)
	orgStore := org.NewStore(a.DB)
	employeeStore := employee.NewStore(a.DB)
	workdayStore := workday.NewStore(a.DB)
	salaryService := salary.NewService(salary.NewStore(a.DB))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, "/api/v1/uploads"))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
				authHandler.RegisterPublicRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				authHandler.RegisterRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))
				userhandler.NewHandler(authStore).RegisterRoutes(r)
			})

			r.Route("/employees", func(r chi.Router) {
				employeehandler.NewHandler(employeeStore, salaryService).RegisterRoutes(r)
			})

			orghandler.NewHandler(orgStore).RegisterRoutes(r)

			r.Route("/workdays", func(r chi.Router) {
				workdayhandler.NewHandler(workdayStore).RegisterRoutes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				reporthandler.NewHandler(salaryService, a.Metrics).RegisterRoutes(r)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager))
				uploadhandler.NewHandler(cfg.UploadDir, cfg.MaxUploadBytes).RegisterRoutes(r)
			})

			if a.Metrics != nil {
				r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
					api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
				})
			}
		})
	})

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

// spaHandler serves the frontend bundle, falling back to index.html so
// client-side routes survive a refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
