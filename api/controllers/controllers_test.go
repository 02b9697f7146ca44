package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricingrules"
	productsvc "github.com/aarshhmi/luminique-admin-backend/internal/products"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withPathID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type stubProductService struct {
	productsvc.Service
	deleted []uuid.UUID
}

func (s *stubProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.deleted = append(s.deleted, productID)
	return nil
}

func TestDeleteProductHandler(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		stub := &stubProductService{}
		req := withPathID(httptest.NewRequest(http.MethodDelete, "/products/not-a-uuid", nil), "not-a-uuid")
		rec := httptest.NewRecorder()
		DeleteProduct(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, stub.deleted)
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		productID := uuid.New()
		req := withPathID(httptest.NewRequest(http.MethodDelete, "/products/"+productID.String(), nil), productID.String())
		rec := httptest.NewRecorder()
		DeleteProduct(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []uuid.UUID{productID}, stub.deleted)

		var body struct {
			Data map[string]bool `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Data["deleted"])
	})
}

type stubMasterDataService struct {
	masterdata.Service
	created *masterdata.CreateMetalTypeInput
}

func (s *stubMasterDataService) CreateMetalType(ctx context.Context, input masterdata.CreateMetalTypeInput) (*masterdata.MetalTypeDTO, error) {
	s.created = &input
	return &masterdata.MetalTypeDTO{Name: input.Name, Slug: input.Slug, IsActive: input.IsActive}, nil
}

func TestCreateMetalTypeHandler(t *testing.T) {
	logg := testLogger()

	t.Run("missing name", func(t *testing.T) {
		stub := &stubMasterDataService{}
		req := httptest.NewRequest(http.MethodPost, "/master-data/metal-types", strings.NewReader(`{"slug":"gold"}`))
		rec := httptest.NewRecorder()
		CreateMetalType(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, stub.created)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		stub := &stubMasterDataService{}
		req := httptest.NewRequest(http.MethodPost, "/master-data/metal-types", strings.NewReader(`{"name":"Gold","colour":"yellow"}`))
		rec := httptest.NewRecorder()
		CreateMetalType(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success defaults active", func(t *testing.T) {
		stub := &stubMasterDataService{}
		req := httptest.NewRequest(http.MethodPost, "/master-data/metal-types", strings.NewReader(`{"name":"Gold"}`))
		rec := httptest.NewRecorder()
		CreateMetalType(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, stub.created)
		assert.Equal(t, "Gold", stub.created.Name)
		assert.True(t, stub.created.IsActive)
	})
}

type stubPricingRuleService struct {
	pricingrules.Service
	previewInput *pricingrules.PreviewInput
	previewErr   error
}

func (s *stubPricingRuleService) Preview(ctx context.Context, input pricingrules.PreviewInput) (*pricingrules.PreviewResult, error) {
	s.previewInput = &input
	if s.previewErr != nil {
		return nil, s.previewErr
	}
	return &pricingrules.PreviewResult{Rows: []pricingrules.PreviewRow{}}, nil
}

func TestPreviewPricingRuleHandler(t *testing.T) {
	logg := testLogger()

	t.Run("malformed body", func(t *testing.T) {
		stub := &stubPricingRuleService{}
		req := httptest.NewRequest(http.MethodPost, "/pricing-rules/preview", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		PreviewPricingRule(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, stub.previewInput)
	})

	t.Run("service validation error surfaces", func(t *testing.T) {
		stub := &stubPricingRuleService{previewErr: pkgerrors.New(pkgerrors.CodeValidation, "markups cannot be negative")}
		body := `{"conditions":[],"markups":{"makingChargeMarkup":10,"diamondMarkup":0,"gemstoneMarkup":0,"pearlMarkup":0}}`
		req := httptest.NewRequest(http.MethodPost, "/pricing-rules/preview", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PreviewPricingRule(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
		assert.Equal(t, "markups cannot be negative", envelope.Error.Message)
	})

	t.Run("passes markups through", func(t *testing.T) {
		stub := &stubPricingRuleService{}
		body := `{"conditions":[{"type":"tags","value":{"tagIds":[]}}],"markups":{"makingChargeMarkup":12.5,"diamondMarkup":5,"gemstoneMarkup":0,"pearlMarkup":0}}`
		req := httptest.NewRequest(http.MethodPost, "/pricing-rules/preview", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PreviewPricingRule(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.previewInput)
		assert.Equal(t, 12.5, stub.previewInput.Markups.MakingChargeMarkup)
		assert.Equal(t, float64(5), stub.previewInput.Markups.DiamondMarkup)
		assert.JSONEq(t, `[{"type":"tags","value":{"tagIds":[]}}]`, string(stub.previewInput.Conditions))
	})
}
