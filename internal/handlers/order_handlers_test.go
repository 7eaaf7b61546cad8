package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"printshop_backend/internal/models"
	"printshop_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	order *models.Order
	err   error
}

func (s *stubOrderService) CreateOrder(services.CreateOrderRequest) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetOrders(models.OrderFilters) ([]models.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) GetOrderByID(string) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) UpdateOrderStatus(string, services.UpdateOrderStatusRequest) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) DeleteOrder(string) error {
	return s.err
}

type stubSettingsService struct {
	settings *models.CompanySettings
}

func (s *stubSettingsService) GetSettings() (*models.CompanySettings, error) {
	return s.settings, nil
}

func (s *stubSettingsService) UpdateSettings(services.UpdateSettingsRequest) (*models.CompanySettings, error) {
	return s.settings, nil
}

type stubRenderer struct {
	output []byte
}

func (s *stubRenderer) ProductionSheet(context.Context, *models.Order, *models.CompanySettings) ([]byte, error) {
	return s.output, nil
}

func TestGetProductionSheetServesInlinePDF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	order := &models.Order{ID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", Status: "draft"}
	handler := NewOrderHandler(
		&stubOrderService{order: order},
		&stubSettingsService{settings: &models.CompanySettings{CompanyName: "Nordprint"}},
		&stubRenderer{output: []byte("%PDF-1.4")},
	)

	engine := gin.New()
	engine.GET("/orders/:id/pdf", handler.GetProductionSheet)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID+"/pdf", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="production-sheet-`+order.ID+`.pdf"`,
		rec.Header().Get("Content-Disposition"),
		"the sheet opens in the browser instead of forcing a download")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestGetProductionSheetUnknownOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewOrderHandler(
		&stubOrderService{err: services.ErrOrderNotFound},
		&stubSettingsService{settings: &models.CompanySettings{CompanyName: "Nordprint"}},
		&stubRenderer{},
	)

	engine := gin.New()
	engine.GET("/orders/:id/pdf", handler.GetProductionSheet)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/missing/pdf", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
