package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/angelmondragon/banner-admin/api/controllers"
	"github.com/angelmondragon/banner-admin/api/middleware"
	"github.com/angelmondragon/banner-admin/pkg/config"
	"github.com/angelmondragon/banner-admin/pkg/logger"
	"github.com/angelmondragon/banner-admin/pkg/redis"
)

// maxJSONBody caps JSON API requests; an inline image is the largest field.
const maxJSONBody = 16 << 20

// BannerService is everything the router needs from the banner table.
type BannerService interface {
	controllers.BannerService
	controllers.AdminService
}

// Dependencies are the collaborators the router wires into handlers. Nil
// pingers and a nil idempotency store are skipped.
type Dependencies struct {
	Banners     BannerService
	Views       controllers.Renderer
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency redis.IdempotencyStore
	HTTPMetrics middleware.HTTPObserver
	Metrics     http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessChecks(deps)))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/banners", controllers.PublicBannerFeed(deps.Banners, logg))
	})

	r.Route("/api/v1/banners", func(r chi.Router) {
		r.Use(chimiddleware.RequestSize(maxJSONBody))
		r.Get("/", controllers.BannerList(deps.Banners, logg))
		r.With(middleware.Idempotency(deps.Idempotency, logg, middleware.IdempotencyOptions{
			TTL:        cfg.HTTP.IdempotencyTTL,
			RequireKey: cfg.HTTP.IdempotencyRequired,
		})).Post("/", controllers.BannerCreate(deps.Banners, logg))
		r.Get("/{bannerId}", controllers.BannerGet(deps.Banners, logg))
		r.Patch("/{bannerId}", controllers.BannerUpdate(deps.Banners, logg))
		r.Delete("/{bannerId}", controllers.BannerDelete(deps.Banners, logg))
	})

	maxUpload := cfg.Media.MaxUploadBytes()
	r.Route(controllers.AdminPath, func(r chi.Router) {
		r.Get("/", controllers.AdminScreen(deps.Banners, deps.Views, logg))
		r.Post("/add", controllers.AdminAdd(deps.Banners, logg))
		r.Post("/banners/{bannerId}/edit", controllers.AdminEdit(deps.Banners, logg))
		r.Post("/banners/{bannerId}/delete", controllers.AdminDelete(deps.Banners, logg))
		r.Route("/form", func(r chi.Router) {
			r.Post("/submit", controllers.AdminSubmit(deps.Banners, deps.Views, logg, maxUpload))
			r.Post("/image", controllers.AdminUploadImage(deps.Banners, deps.Views, logg, maxUpload))
			r.Post("/image/remove", controllers.AdminRemoveImage(deps.Banners, logg))
			r.Post("/cancel", controllers.AdminCancel(deps.Banners))
		})
	})

	return r
}

func readinessChecks(deps Dependencies) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["database"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
