package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aarshhmi/luminique-admin-backend/api/controllers"
	"github.com/aarshhmi/luminique-admin-backend/api/middleware"
	"github.com/aarshhmi/luminique-admin-backend/internal/cms"
	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricingrules"
	"github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/config"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/metrics"
	"github.com/aarshhmi/luminique-admin-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps map[string]controllers.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	importMetrics *metrics.ImportMetrics,
	masterDataService masterdata.Service,
	productService products.Service,
	pricingRuleService pricingrules.Service,
	cmsService cms.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/master-data", func(r chi.Router) {
			r.Route("/metal-types", func(r chi.Router) {
				r.Get("/", controllers.ListMetalTypes(masterDataService, logg))
				r.Post("/", controllers.CreateMetalType(masterDataService, logg))
				r.Get("/{id}", controllers.GetMetalType(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateMetalType(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteMetalType(masterDataService, logg))
			})
			r.Route("/metal-colors", func(r chi.Router) {
				r.Get("/", controllers.ListMetalColors(masterDataService, logg))
				r.Post("/", controllers.CreateMetalColor(masterDataService, logg))
				r.Get("/{id}", controllers.GetMetalColor(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateMetalColor(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteMetalColor(masterDataService, logg))
			})
			r.Route("/metal-purities", func(r chi.Router) {
				r.Get("/", controllers.ListMetalPurities(masterDataService, logg))
				r.Post("/", controllers.CreateMetalPurity(masterDataService, logg))
				r.Get("/{id}", controllers.GetMetalPurity(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateMetalPurity(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteMetalPurity(masterDataService, logg))
			})
			r.Route("/gemstone-types", func(r chi.Router) {
				r.Get("/", controllers.ListGemstoneTypes(masterDataService, logg))
				r.Post("/", controllers.CreateGemstoneType(masterDataService, logg))
				r.Get("/{id}", controllers.GetGemstoneType(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateGemstoneType(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteGemstoneType(masterDataService, logg))
			})
			r.Route("/diamond-clarity-colors", func(r chi.Router) {
				r.Get("/", controllers.ListDiamondClarityColors(masterDataService, logg))
				r.Post("/", controllers.CreateDiamondClarityColor(masterDataService, logg))
				r.Get("/{id}", controllers.GetDiamondClarityColor(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateDiamondClarityColor(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteDiamondClarityColor(masterDataService, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.ListCategories(masterDataService, logg))
				r.Post("/", controllers.CreateCategory(masterDataService, logg))
				r.Get("/{id}", controllers.GetCategory(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateCategory(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteCategory(masterDataService, logg))
			})
			r.Route("/tags", func(r chi.Router) {
				r.Get("/", controllers.ListTags(masterDataService, logg))
				r.Post("/", controllers.CreateTag(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateTag(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteTag(masterDataService, logg))
			})
			r.Route("/badges", func(r chi.Router) {
				r.Get("/", controllers.ListBadges(masterDataService, logg))
				r.Post("/", controllers.CreateBadge(masterDataService, logg))
				r.Patch("/{id}", controllers.UpdateBadge(masterDataService, logg))
				r.Delete("/{id}", controllers.DeleteBadge(masterDataService, logg))
			})
			r.Post("/import", controllers.ImportMasterDataCSV(masterDataService, importMetrics, logg))
			r.Get("/export", controllers.ExportMasterDataCSV(masterDataService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Patch("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
			r.Post("/{id}/variants", controllers.AddVariant(productService, logg))
		})
		r.Route("/variants", func(r chi.Router) {
			r.Patch("/{id}", controllers.UpdateVariant(productService, logg))
			r.Delete("/{id}", controllers.DeleteVariant(productService, logg))
		})

		r.Route("/pricing-rules", func(r chi.Router) {
			r.Get("/", controllers.ListPricingRules(pricingRuleService, logg))
			r.Post("/", controllers.CreatePricingRule(pricingRuleService, logg))
			r.Post("/preview", controllers.PreviewPricingRule(pricingRuleService, logg))
			r.Get("/{id}", controllers.GetPricingRule(pricingRuleService, logg))
			r.Patch("/{id}", controllers.UpdatePricingRule(pricingRuleService, logg))
			r.Delete("/{id}", controllers.DeletePricingRule(pricingRuleService, logg))
		})

		r.Route("/cms", func(r chi.Router) {
			r.Route("/pages", func(r chi.Router) {
				r.Get("/", controllers.ListCMSPages(cmsService, logg))
				r.Post("/", controllers.CreateCMSPage(cmsService, logg))
				r.Get("/{id}", controllers.GetCMSPage(cmsService, logg))
				r.Patch("/{id}", controllers.UpdateCMSPage(cmsService, logg))
				r.Delete("/{id}", controllers.DeleteCMSPage(cmsService, logg))
				r.Post("/{id}/publish", controllers.PublishCMSPage(cmsService, logg))
				r.Post("/{id}/unpublish", controllers.UnpublishCMSPage(cmsService, logg))
				r.Post("/{id}/sections", controllers.AddCMSSection(cmsService, logg))
				r.Put("/{id}/sections/order", controllers.ReorderCMSSections(cmsService, logg))
			})
			r.Route("/sections", func(r chi.Router) {
				r.Patch("/{id}", controllers.UpdateCMSSection(cmsService, logg))
				r.Delete("/{id}", controllers.DeleteCMSSection(cmsService, logg))
			})
		})
	})

	return r
}
