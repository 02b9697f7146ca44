package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/api/controllers"
	"github.com/aarshhmi/luminique-admin-backend/internal/cms"
	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricingrules"
	"github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/config"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/metrics"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
	"github.com/aarshhmi/luminique-admin-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

// The stubs embed their service interface and override only what a routing
// test exercises; anything else panics through the nil embedded value.

type stubMasterDataService struct {
	masterdata.Service
}

func (stubMasterDataService) ListMetalTypes(ctx context.Context, params pagination.Params) (*masterdata.ListResult[masterdata.MetalTypeDTO], error) {
	return &masterdata.ListResult[masterdata.MetalTypeDTO]{Items: []masterdata.MetalTypeDTO{}}, nil
}

func (stubMasterDataService) ListTags(ctx context.Context, params pagination.Params) (*masterdata.ListResult[masterdata.TagDTO], error) {
	return &masterdata.ListResult[masterdata.TagDTO]{Items: []masterdata.TagDTO{}}, nil
}

type stubProductService struct {
	products.Service
}

func (stubProductService) ListProducts(ctx context.Context, input products.ListProductsInput) (*products.ProductListResult, error) {
	return &products.ProductListResult{Products: []products.ProductDTO{}}, nil
}

type stubPricingRuleService struct {
	pricingrules.Service
}

func (stubPricingRuleService) ListRules(ctx context.Context, input pricingrules.ListRulesInput) (*pricingrules.RuleListResult, error) {
	return &pricingrules.RuleListResult{Rules: []pricingrules.RuleDTO{}}, nil
}

type stubCMSService struct {
	cms.Service
}

func (stubCMSService) ListPages(ctx context.Context, input cms.ListPagesInput) (*cms.PageListResult, error) {
	return &cms.PageListResult{Pages: []cms.PageDTO{}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		map[string]controllers.Pinger{
			"postgres": stubPinger{},
			"redis":    stubPinger{},
		},
		(*redis.Client)(nil),
		prometheus.NewRegistry(),
		metrics.NewHTTPMetrics(nil),
		metrics.NewImportMetrics(nil),
		stubMasterDataService{},
		stubProductService{},
		stubPricingRuleService{},
		stubCMSService{},
	)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	live := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, live)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "test", resp.Header().Get("X-Luminique-Env"))

	ready := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, ready)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAdminListRoutesMounted(t *testing.T) {
	router := newTestRouter()

	paths := []string{
		"/api/admin/v1/master-data/metal-types",
		"/api/admin/v1/master-data/tags",
		"/api/admin/v1/products",
		"/api/admin/v1/pricing-rules",
		"/api/admin/v1/cms/pages",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equalf(t, http.StatusOK, resp.Code, "GET %s", path)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/unknown", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
