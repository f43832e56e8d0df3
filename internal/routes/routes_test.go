package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"welfare/internal/handlers"
	"welfare/internal/ledger"
	"welfare/internal/models"
	"welfare/internal/services/welfare"
	"welfare/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-test-secret"

type testAPI struct {
	app *fiber.App
	now time.Time
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	var seq int
	store := ledger.New(ledger.Options{
		Clock: func() time.Time { return api.now },
		NewID: func() string {
			seq++
			return fmt.Sprintf("txn_%d", seq)
		},
	})
	require.NoError(t, store.Load(ledger.Catalog{
		Companies: []models.Company{{ID: "cmp_1", Name: "Acme", TotalCredits: 20000, UsedCredits: 8500}},
		Employees: []models.Employee{
			{ID: "emp_1", CompanyID: "cmp_1", FirstName: "Ada", AvailablePoints: 750, TotalPoints: 750, Active: true},
			{ID: "emp_2", CompanyID: "cmp_1", FirstName: "Bo", Active: true},
		},
		Partners: []models.Partner{{ID: "prt_1", Name: "Spa", Active: true}},
		Services: []models.Service{
			{ID: "srv_1", PartnerID: "prt_1", Name: "Massage", Category: models.CategoryWellness, PointsRequired: 200, Active: true},
		},
	}))

	api.app = fiber.New()
	SetupRoutes(api.app, Dependencies{
		Welfare:   welfare.NewService(store, nil, nil, nil),
		JWTSecret: secret,
		HealthChecks: map[string]handlers.Check{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return nil },
		},
	})
	return api
}

func bearer(t *testing.T, claims models.SessionClaims) string {
	t.Helper()
	tok, err := utils.GenerateSessionToken(secret, claims, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

var (
	adminClaims    = models.SessionClaims{ActorID: "admin_1", Role: models.RoleCompanyAdmin, CompanyID: "cmp_1"}
	employeeClaims = models.SessionClaims{ActorID: "emp_1", Role: models.RoleEmployee, CompanyID: "cmp_1", EmployeeID: "emp_1"}
	partnerClaims  = models.SessionClaims{ActorID: "prt_1", Role: models.RolePartner, PartnerID: "prt_1"}
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func (a *testAPI) do(t *testing.T, method, path, auth string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPIRequiresToken(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(t, http.MethodGet, "/api/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDistribution(t *testing.T) {
	api := newTestAPI(t)
	admin := bearer(t, adminClaims)

	status, env := api.do(t, http.MethodPost, "/api/companies/cmp_1/distributions", admin, fiber.Map{
		"distributions": []fiber.Map{{"employee_id": "emp_1", "points": 12000}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_CREDITS", env.Code)

	status, env = api.do(t, http.MethodGet, "/api/companies/cmp_1", admin, nil)
	require.Equal(t, http.StatusOK, status)
	var company models.Company
	require.NoError(t, json.Unmarshal(env.Data, &company))
	assert.Equal(t, int64(11500), company.AvailableCredits)

	status, env = api.do(t, http.MethodPost, "/api/companies/cmp_1/distributions", admin, fiber.Map{
		"distributions": []fiber.Map{{"employee_id": "emp_2", "points": 500}},
	})
	require.Equal(t, http.StatusOK, status)
	var result ledger.DistributionResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(11000), result.Company.AvailableCredits)

	status, env = api.do(t, http.MethodPost, "/api/companies/cmp_1/distributions", admin, fiber.Map{
		"distributions": []fiber.Map{
			{"employee_id": "emp_1", "points": int64(9223372036854775807)},
			{"employee_id": "emp_2", "points": 1},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_CREDITS", env.Code)

	status, env = api.do(t, http.MethodGet, "/api/companies/cmp_1", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &company))
	assert.Equal(t, int64(11000), company.AvailableCredits)

	status, env = api.do(t, http.MethodPost, "/api/companies/cmp_1/distributions", admin, fiber.Map{
		"distributions": []fiber.Map{{"employee_id": "emp_2", "points": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)

	status, _ = api.do(t, http.MethodPost, "/api/companies/cmp_2/distributions", admin, fiber.Map{
		"distributions": []fiber.Map{{"employee_id": "emp_2", "points": 1}},
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(t, http.MethodPost, "/api/companies/cmp_1/distributions", bearer(t, employeeClaims), fiber.Map{
		"distributions": []fiber.Map{{"employee_id": "emp_1", "points": 1}},
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestBookAndRedeem(t *testing.T) {
	api := newTestAPI(t)
	employee := bearer(t, employeeClaims)
	partner := bearer(t, partnerClaims)

	status, env := api.do(t, http.MethodPost, "/api/bookings", employee, fiber.Map{"service_id": "srv_1"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var tx models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, models.TransactionStatusPending, tx.Status)

	status, env = api.do(t, http.MethodGet, "/api/employees/emp_1", employee, nil)
	require.Equal(t, http.StatusOK, status)
	var emp models.Employee
	require.NoError(t, json.Unmarshal(env.Data, &emp))
	assert.Equal(t, int64(550), emp.AvailablePoints)

	status, env = api.do(t, http.MethodPost, "/api/vouchers", employee, fiber.Map{"service_id": "srv_1"})
	require.Equal(t, http.StatusCreated, status)
	var issued welfare.IssuedVoucher
	require.NoError(t, json.Unmarshal(env.Data, &issued))
	assert.Equal(t, tx.ID, issued.Voucher.TransactionID)

	status, env = api.do(t, http.MethodPost, "/api/partners/prt_1/redemptions", partner, fiber.Map{"payload": issued.Payload})
	require.Equal(t, http.StatusOK, status, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)

	status, env = api.do(t, http.MethodPost, "/api/partners/prt_1/redemptions", partner, fiber.Map{"payload": issued.Payload})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)

	status, _ = api.do(t, http.MethodGet, "/api/partners/prt_1/transactions", partner, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestExpiredVoucher(t *testing.T) {
	api := newTestAPI(t)
	employee := bearer(t, employeeClaims)

	status, _ := api.do(t, http.MethodPost, "/api/bookings", employee, fiber.Map{"service_id": "srv_1"})
	require.Equal(t, http.StatusCreated, status)
	status, env := api.do(t, http.MethodPost, "/api/vouchers", employee, fiber.Map{"service_id": "srv_1"})
	require.Equal(t, http.StatusCreated, status)
	var issued welfare.IssuedVoucher
	require.NoError(t, json.Unmarshal(env.Data, &issued))

	api.now = api.now.Add(16 * time.Minute)
	status, env = api.do(t, http.MethodPost, "/api/partners/prt_1/redemptions", bearer(t, partnerClaims), fiber.Map{"payload": issued.Payload})
	assert.Equal(t, http.StatusGone, status)
	assert.Equal(t, "VOUCHER_EXPIRED", env.Code)
}

func TestBookingErrors(t *testing.T) {
	api := newTestAPI(t)
	employee := bearer(t, employeeClaims)

	status, env := api.do(t, http.MethodPost, "/api/bookings", employee, fiber.Map{"service_id": "srv_404"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)

	status, env = api.do(t, http.MethodPost, "/api/bookings", bearer(t, adminClaims), fiber.Map{"employee_id": "emp_2", "service_id": "srv_1"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_BALANCE", env.Code)

	status, _ = api.do(t, http.MethodPost, "/api/bookings", bearer(t, partnerClaims), fiber.Map{"service_id": "srv_1"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestEmployeeTransactionsPaginated(t *testing.T) {
	api := newTestAPI(t)
	employee := bearer(t, employeeClaims)
	for i := 0; i < 3; i++ {
		status, _ := api.do(t, http.MethodPost, "/api/bookings", employee, fiber.Map{"service_id": "srv_1"})
		require.Equal(t, http.StatusCreated, status)
		api.now = api.now.Add(time.Second)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/employees/emp_1/transactions?page=2&limit=2", nil)
	req.Header.Set(fiber.HeaderAuthorization, employee)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Data []models.Transaction `json:"data"`
		Meta struct {
			TotalItems int64 `json:"total_items"`
			TotalPages int64 `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.Equal(t, int64(2), page.Meta.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "txn_1", page.Data[0].ID)
}

func TestCatalogRoutes(t *testing.T) {
	api := newTestAPI(t)
	partner := bearer(t, partnerClaims)

	status, env := api.do(t, http.MethodPost, "/api/partners/prt_1/services", partner, fiber.Map{
		"name": "Sauna", "category": "wellness", "points_required": 80, "original_price": "25.00",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	var created models.Service
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.Active)

	status, env = api.do(t, http.MethodGet, "/api/services?category=wellness", bearer(t, employeeClaims), nil)
	require.Equal(t, http.StatusOK, status)
	var services []models.Service
	require.NoError(t, json.Unmarshal(env.Data, &services))
	assert.Len(t, services, 2)

	status, _ = api.do(t, http.MethodGet, "/api/services/"+created.ID, partner, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(t, http.MethodPost, "/api/partners/prt_1/services", partner, fiber.Map{
		"name": "Bad", "category": "casino", "points_required": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestHealthDegraded(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Welfare:   welfare.NewService(ledger.New(ledger.Options{}), nil, nil, nil),
		JWTSecret: secret,
		HealthChecks: map[string]handlers.Check{
			"redis": func(context.Context) error { return errors.New("down") },
		},
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
