package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadflow/internal/database"
	"leadflow/internal/middleware"
	"leadflow/internal/modules/dashboard"
	"leadflow/internal/modules/lead"
	"leadflow/internal/modules/order"
	"leadflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type E2ETestSuite struct {
	router *gin.Engine
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// One in-memory sqlite DB per pooled connection otherwise
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db, repository.LeadModel(), repository.OrderModel()))

	leadRepo := repository.NewLeadRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	leadHandler := lead.NewHandler(lead.NewService(leadRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, leadRepo))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(leadRepo, orderRepo))

	router := gin.New()
	router.Use(middleware.CORS(nil))
	router.Use(middleware.ErrorLogger())

	v1 := router.Group("/api/v1")
	leadHandler.RegisterRoutes(v1)
	orderHandler.RegisterRoutes(v1)
	dashboardHandler.RegisterRoutes(v1)

	return &E2ETestSuite{router: router}
}

func (s *E2ETestSuite) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, *TestResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, &resp
}

func (s *E2ETestSuite) createLead(t *testing.T, body map[string]interface{}) map[string]interface{} {
	w, resp := s.request(t, http.MethodPost, "/api/v1/leads", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return resp.Data["lead"].(map[string]interface{})
}

func (s *E2ETestSuite) createOrder(t *testing.T, body map[string]interface{}) map[string]interface{} {
	w, resp := s.request(t, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return resp.Data["order"].(map[string]interface{})
}

func isoDate(daysFromToday int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromToday).Format("2006-01-02")
}

func TestLeadCRUD(t *testing.T) {
	s := setupTestSuite(t)

	created := s.createLead(t, map[string]interface{}{
		"name":    "Aigerim Bekova",
		"contact": "aigerim@akbarys.kz",
		"company": "Akbarys LLP",
	})
	assert.Equal(t, "New", created["stage"], "stage must default to New")
	assert.NotContains(t, created, "follow_up_date")
	assert.NotContains(t, created, "updated_at")
	id := int64(created["id"].(float64))
	require.Greater(t, id, int64(0))

	t.Run("get", func(t *testing.T) {
		w, resp := s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/leads/%d", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := resp.Data["lead"].(map[string]interface{})
		assert.Equal(t, "Aigerim Bekova", got["name"])
		assert.Equal(t, "Akbarys LLP", got["company"])
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		w, resp := s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/leads/%d", id),
			map[string]interface{}{"notes": "called, send catalogue"})
		require.Equal(t, http.StatusOK, w.Code)
		got := resp.Data["lead"].(map[string]interface{})
		assert.Equal(t, "called, send catalogue", got["notes"])
		assert.Equal(t, "Aigerim Bekova", got["name"])
		assert.Equal(t, "aigerim@akbarys.kz", got["contact"])
		assert.Equal(t, "New", got["stage"])
		assert.Contains(t, got, "updated_at")
	})

	t.Run("update missing lead", func(t *testing.T) {
		w, resp := s.request(t, http.MethodPatch, "/api/v1/leads/9999",
			map[string]interface{}{"notes": "x"})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("delete then 404", func(t *testing.T) {
		w, _ := s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/leads/%d", id), nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, w.Body.Len())

		w, _ = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/leads/%d", id), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		// delete is not idempotent-success
		w, resp := s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/leads/%d", id), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestLeadValidation(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/leads",
		map[string]interface{}{"name": "No Contact"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	details := resp.Error.Details.(map[string]interface{})
	assert.Contains(t, details, "Contact")

	w, resp = s.request(t, http.MethodPost, "/api/v1/leads",
		map[string]interface{}{"name": "x", "contact": "y", "follow_up_date": "31-12-2025"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestLeadFilters(t *testing.T) {
	s := setupTestSuite(t)

	s.createLead(t, map[string]interface{}{"name": "A", "contact": "a@x.kz", "stage": "Contacted", "follow_up_date": isoDate(1)})
	s.createLead(t, map[string]interface{}{"name": "B", "contact": "b@x.kz", "stage": "Contacted", "follow_up_date": isoDate(2)})
	s.createLead(t, map[string]interface{}{"name": "C", "contact": "c@x.kz", "stage": "Won"})

	w, resp := s.request(t, http.MethodGet, "/api/v1/leads", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["leads"], 3)

	w, resp = s.request(t, http.MethodGet, "/api/v1/leads?stage=Contacted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["leads"], 2)

	w, resp = s.request(t, http.MethodGet, "/api/v1/leads?stage=Contacted&follow_up_date="+isoDate(2), nil)
	require.Equal(t, http.StatusOK, w.Code)
	leads := resp.Data["leads"].([]interface{})
	require.Len(t, leads, 1)
	assert.Equal(t, "B", leads[0].(map[string]interface{})["name"])
}

func TestOrderCRUD(t *testing.T) {
	s := setupTestSuite(t)

	l := s.createLead(t, map[string]interface{}{"name": "Daniyar", "contact": "d@x.kz"})
	leadID := int64(l["id"].(float64))

	created := s.createOrder(t, map[string]interface{}{
		"lead_id":      leadID,
		"product_name": "Packaging line PL-200",
		"quantity":     2,
	})
	assert.Equal(t, "Received", created["status"], "status must default to Received")
	assert.Equal(t, isoDate(0), created["order_date"], "order_date must default to today")
	orderID := int64(created["id"].(float64))

	t.Run("create for missing lead", func(t *testing.T) {
		w, resp := s.request(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
			"lead_id":      9999,
			"product_name": "x",
			"quantity":     1,
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
		assert.Equal(t, "Lead with ID 9999 not found", resp.Error.Message)

		// no row must be left behind
		w, resp = s.request(t, http.MethodGet, "/api/v1/orders", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, resp.Data["orders"], 1)
	})

	t.Run("create for deleted lead", func(t *testing.T) {
		gone := s.createLead(t, map[string]interface{}{"name": "Gone", "contact": "g@x.kz"})
		goneID := int64(gone["id"].(float64))
		w, _ := s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/leads/%d", goneID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w, resp := s.request(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
			"lead_id":      goneID,
			"product_name": "x",
			"quantity":     1,
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		w, resp := s.request(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
			"lead_id":      leadID,
			"product_name": "x",
			"quantity":     1,
			"status":       "Shipped",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		w, resp := s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d", orderID),
			map[string]interface{}{"status": "Dispatched", "tracking_number": "KZ123"})
		require.Equal(t, http.StatusOK, w.Code)
		got := resp.Data["order"].(map[string]interface{})
		assert.Equal(t, "Dispatched", got["status"])
		assert.Equal(t, "KZ123", got["tracking_number"])
		assert.Equal(t, "Packaging line PL-200", got["product_name"])
		assert.Equal(t, float64(2), got["quantity"])
	})

	t.Run("delete then 404", func(t *testing.T) {
		w, _ := s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w, resp := s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestOrderFilters(t *testing.T) {
	s := setupTestSuite(t)

	l1 := s.createLead(t, map[string]interface{}{"name": "L1", "contact": "l1@x.kz"})
	l2 := s.createLead(t, map[string]interface{}{"name": "L2", "contact": "l2@x.kz"})
	id1 := int64(l1["id"].(float64))
	id2 := int64(l2["id"].(float64))

	s.createOrder(t, map[string]interface{}{"lead_id": id1, "product_name": "P1", "quantity": 1, "status": "Dispatched"})
	s.createOrder(t, map[string]interface{}{"lead_id": id1, "product_name": "P2", "quantity": 1})
	s.createOrder(t, map[string]interface{}{"lead_id": id2, "product_name": "P3", "quantity": 1, "status": "Dispatched"})

	w, resp := s.request(t, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["orders"], 3)

	w, resp = s.request(t, http.MethodGet, "/api/v1/orders?status=Dispatched", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := resp.Data["orders"].([]interface{})
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "Dispatched", o.(map[string]interface{})["status"])
	}

	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/orders?lead_id=%d&status=Dispatched", id1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders = resp.Data["orders"].([]interface{})
	require.Len(t, orders, 1)
	assert.Equal(t, "P1", orders[0].(map[string]interface{})["product_name"])
}

func TestDashboardMetrics(t *testing.T) {
	s := setupTestSuite(t)

	// follow-up window probes: today and today+7 are in, today-1 and
	// today+8 are out
	s.createLead(t, map[string]interface{}{"name": "Due today", "contact": "a@x.kz", "follow_up_date": isoDate(0)})
	s.createLead(t, map[string]interface{}{"name": "Due in 7", "contact": "b@x.kz", "follow_up_date": isoDate(7)})
	s.createLead(t, map[string]interface{}{"name": "Due in 8", "contact": "c@x.kz", "follow_up_date": isoDate(8)})
	overdue := s.createLead(t, map[string]interface{}{"name": "Overdue open", "contact": "d@x.kz", "stage": "Qualified", "follow_up_date": isoDate(-1)})
	s.createLead(t, map[string]interface{}{"name": "Overdue won", "contact": "e@x.kz", "stage": "Won", "follow_up_date": isoDate(-5)})
	s.createLead(t, map[string]interface{}{"name": "No date", "contact": "f@x.kz", "stage": "Lost"})

	leadID := int64(overdue["id"].(float64))
	s.createOrder(t, map[string]interface{}{"lead_id": leadID, "product_name": "P1", "quantity": 1})
	s.createOrder(t, map[string]interface{}{"lead_id": leadID, "product_name": "P2", "quantity": 2, "status": "Dispatched"})
	s.createOrder(t, map[string]interface{}{"lead_id": leadID, "product_name": "P3", "quantity": 3, "status": "Dispatched"})

	w, resp := s.request(t, http.MethodGet, "/api/v1/dashboard/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := resp.Data["metrics"].(map[string]interface{})

	assert.Equal(t, float64(6), m["total_leads"])
	assert.Equal(t, float64(3), m["total_orders"])
	assert.Equal(t, float64(2), m["followups_due_this_week"], "window must be inclusive on both ends")

	byStage := m["leads_by_stage"].(map[string]interface{})
	assert.Equal(t, float64(3), byStage["New"])
	assert.Equal(t, float64(1), byStage["Qualified"])
	assert.Equal(t, float64(1), byStage["Won"])
	assert.Equal(t, float64(1), byStage["Lost"])
	assert.NotContains(t, byStage, "Contacted", "only observed stages appear")

	var stageSum float64
	for _, v := range byStage {
		stageSum += v.(float64)
	}
	assert.Equal(t, m["total_leads"], stageSum)

	byStatus := m["orders_by_status"].(map[string]interface{})
	assert.Equal(t, float64(1), byStatus["Received"])
	assert.Equal(t, float64(2), byStatus["Dispatched"])

	overdueList := m["overdue_followups"].([]interface{})
	require.Len(t, overdueList, 1, "final-stage and dateless leads are excluded")
	got := overdueList[0].(map[string]interface{})
	assert.Equal(t, "Overdue open", got["name"])
	assert.Equal(t, "d@x.kz", got["contact"])
	assert.Equal(t, isoDate(-1), got["follow_up_date"])
}
