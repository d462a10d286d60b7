package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository/repotest"
	"plantnet/internal/wire"
	"plantnet/pkg/credential"
	"plantnet/pkg/notifier"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	store  *repotest.Store
	signer *credential.Signer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := repotest.NewStore()
	signer := credential.NewSigner("test-secret", time.Hour)
	config := &utils.Config{
		App: utils.AppConfig{
			Env:            "development",
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173"},
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		JWT:     utils.JWTConfig{CookieName: "token"},
		Payment: utils.PaymentConfig{Currency: "usd"},
	}

	app := wire.Wiring(wire.Deps{
		Repo:     store.Repository(),
		Gateway:  payment.Disabled{},
		Notifier: notifier.NewLogNotifier(zap.NewNop()),
		Signer:   signer,
	}, config, zap.NewNop())

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv, store: store, signer: signer}
}

func (ts *testServer) seedUser(email string, role entity.UserRole) {
	now := time.Now().UTC()
	ts.store.PutUser(entity.User{
		Base:   entity.Base{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now},
		Email:  email,
		Role:   role,
		Status: entity.RoleStatusNone,
	})
}

func (ts *testServer) token(email string) string {
	ts.t.Helper()
	token, _, err := ts.signer.Issue(email)
	if err != nil {
		ts.t.Fatal(err)
	}
	return token
}

// do sends body as JSON with the caller's credential cookie and decodes the envelope.
func (ts *testServer) do(method, path, caller string, body any) (int, envelope) {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			ts.t.Fatal(err)
		}
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.srv.URL+path, &buf)
	if err != nil {
		ts.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: ts.token(caller)})
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ts.t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		ts.t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func (ts *testServer) expect(method, path, caller string, body any, wantCode int) envelope {
	ts.t.Helper()
	code, env := ts.do(method, path, caller, body)
	if code != wantCode {
		ts.t.Fatalf("%s %s as %q: code = %d, want %d (message %q)", method, path, caller, code, wantCode, env.Message)
	}
	return env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestAdminCannotGrantUnrequestedRole(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("c@example.com", entity.RoleCustomer)
	ts.seedUser("admin@example.com", entity.RoleAdmin)

	ts.expect(http.MethodPatch, "/user/role/c@example.com", "admin@example.com", map[string]string{"role": "seller"}, http.StatusConflict)

	env := ts.expect(http.MethodGet, "/user/role/c@example.com", "c@example.com", nil, http.StatusOK)
	if role := decode[map[string]any](t, env.Data)["role"]; role != "customer" {
		t.Fatalf("role = %v, want customer", role)
	}
}

func TestSaveUserWithEmptyBody(t *testing.T) {
	ts := newTestServer(t)

	env := ts.expect(http.MethodPost, "/users/new@example.com", "", nil, http.StatusOK)
	user := decode[map[string]any](t, env.Data)
	if user["email"] != "new@example.com" || user["role"] != "customer" {
		t.Fatalf("user = %v", user)
	}
	if ts.store.UserCount() != 1 {
		t.Fatalf("stored users = %d, want 1", ts.store.UserCount())
	}

	ts.expect(http.MethodPost, "/users/new@example.com", "", map[string]any{"name": 7}, http.StatusBadRequest)
}

func TestIssueTokenSetsCookie(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "a@example.com"})
	resp, err := http.Post(ts.srv.URL+"/jwt", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("code = %d", resp.StatusCode)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("token cookie = %+v", cookie)
	}

	claims, err := ts.signer.Verify(cookie.Value)
	if err != nil || claims.Email != "a@example.com" {
		t.Fatalf("cookie credential invalid: %v", err)
	}

	resp, err = http.Get(ts.srv.URL + "/logout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == "token" && c.MaxAge >= 0 {
			t.Errorf("logout cookie not cleared: %+v", c)
		}
	}
}

func TestAuthGuards(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("customer@example.com", entity.RoleCustomer)

	ts.expect(http.MethodPost, "/plants", "", map[string]any{"name": "Fern"}, http.StatusUnauthorized)
	ts.expect(http.MethodPost, "/plants", "customer@example.com", map[string]any{"name": "Fern"}, http.StatusForbidden)
	ts.expect(http.MethodGet, "/stats", "customer@example.com", nil, http.StatusForbidden)
	ts.expect(http.MethodGet, "/users/customer@example.com", "customer@example.com", nil, http.StatusForbidden)
	ts.expect(http.MethodDelete, "/plants/"+utils.NewID().String(), "customer@example.com", nil, http.StatusForbidden)
}

func TestRoleChangeScenario(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("admin@example.com", entity.RoleAdmin)

	env := ts.expect(http.MethodPost, "/users/a@example.com", "", map[string]any{"name": "A", "phone": "555"}, http.StatusOK)
	user := decode[map[string]any](t, env.Data)
	if user["role"] != "customer" {
		t.Fatalf("new user role = %v", user["role"])
	}

	ts.expect(http.MethodPatch, "/users/a@example.com", "a@example.com", nil, http.StatusOK)
	ts.expect(http.MethodPatch, "/users/a@example.com", "a@example.com", nil, http.StatusBadRequest)

	ts.expect(http.MethodPatch, "/user/role/a@example.com", "a@example.com", map[string]string{"role": "admin"}, http.StatusForbidden)
	ts.expect(http.MethodPatch, "/user/role/a@example.com", "admin@example.com", map[string]string{"role": "seller"}, http.StatusOK)

	env = ts.expect(http.MethodGet, "/user/role/a@example.com", "a@example.com", nil, http.StatusOK)
	if role := decode[map[string]any](t, env.Data)["role"]; role != "seller" {
		t.Fatalf("role = %v, want seller", role)
	}

	env = ts.expect(http.MethodGet, "/users/admin@example.com", "admin@example.com", nil, http.StatusOK)
	users := decode[[]map[string]any](t, env.Data)
	if len(users) != 1 || users[0]["email"] != "a@example.com" || users[0]["status"] != "verified" {
		t.Fatalf("users = %v", users)
	}

	ts.expect(http.MethodPatch, "/users/a@example.com", "a@example.com", nil, http.StatusOK)
}

func TestListingQuantityScenario(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("seller@example.com", entity.RoleSeller)

	env := ts.expect(http.MethodPost, "/plants", "seller@example.com", map[string]any{
		"name":     "Snake Plant",
		"category": "Indoor",
		"price":    12.5,
		"quantity": 10,
	}, http.StatusCreated)
	id := decode[map[string]string](t, env.Data)["insertedId"]

	ts.expect(http.MethodPost, "/order", "buyer@example.com", map[string]any{"plantId": id, "quantity": 3}, http.StatusCreated)

	ts.expect(http.MethodPatch, "/plants/quantity/"+id, "buyer@example.com",
		map[string]any{"quantityToUpdate": 3, "status": "decrease"}, http.StatusOK)
	if p, _ := ts.store.Plant(uuid.MustParse(id)); p.Quantity != 7 {
		t.Fatalf("after decrease quantity = %d, want 7", p.Quantity)
	}

	ts.expect(http.MethodPatch, "/plants/quantity/"+id, "buyer@example.com",
		map[string]any{"quantityToUpdate": 3, "status": "increase"}, http.StatusOK)

	env = ts.expect(http.MethodGet, "/plants/"+id, "", nil, http.StatusOK)
	if q := decode[map[string]any](t, env.Data)["quantity"]; q != float64(10) {
		t.Fatalf("quantity = %v, want 10", q)
	}

	env = ts.expect(http.MethodGet, "/seller/plants", "seller@example.com", nil, http.StatusOK)
	if plants := decode[[]map[string]any](t, env.Data); len(plants) != 1 {
		t.Fatalf("seller plants = %d, want 1", len(plants))
	}

	ts.expect(http.MethodPatch, "/plants/quantity/"+id, "buyer@example.com",
		map[string]any{"quantityToUpdate": 50, "status": "decrease"}, http.StatusConflict)

	ts.expect(http.MethodGet, "/plants/"+utils.NewID().String(), "", nil, http.StatusNotFound)
	ts.expect(http.MethodGet, "/plants/not-a-uuid", "", nil, http.StatusBadRequest)
}

func TestDeliveredOrderCannotBeCancelled(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("seller@example.com", entity.RoleSeller)

	env := ts.expect(http.MethodPost, "/plants", "seller@example.com", map[string]any{
		"name": "Pothos", "category": "Indoor", "price": "8.00", "quantity": 5,
	}, http.StatusCreated)
	plantID := decode[map[string]string](t, env.Data)["insertedId"]

	env = ts.expect(http.MethodPost, "/order", "buyer@example.com", map[string]any{"plantId": plantID, "quantity": 1}, http.StatusCreated)
	orderID := decode[map[string]string](t, env.Data)["insertedId"]

	ts.expect(http.MethodPatch, "/manage-order/status/"+orderID, "seller@example.com",
		map[string]string{"status": "delivered"}, http.StatusOK)

	ts.expect(http.MethodDelete, "/order-cancle/"+orderID, "buyer@example.com", nil, http.StatusConflict)
	ts.expect(http.MethodDelete, "/manage-order/"+orderID, "seller@example.com", nil, http.StatusConflict)

	env = ts.expect(http.MethodGet, "/customer-order/buyer@example.com", "buyer@example.com", nil, http.StatusOK)
	orders := decode[[]map[string]any](t, env.Data)
	if len(orders) != 1 || orders[0]["id"] != orderID || orders[0]["plantName"] != "Pothos" {
		t.Fatalf("customer orders = %v", orders)
	}
	if _, nested := orders[0]["plant"]; nested {
		t.Error("nested listing object in customer order")
	}

	env = ts.expect(http.MethodGet, "/manage-order/seller@example.com", "seller@example.com", nil, http.StatusOK)
	if orders := decode[[]map[string]any](t, env.Data); len(orders) != 1 {
		t.Fatalf("seller orders = %d, want 1", len(orders))
	}
}

func TestCancelPendingOrder(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("seller@example.com", entity.RoleSeller)

	env := ts.expect(http.MethodPost, "/plants", "seller@example.com", map[string]any{
		"name": "Aloe", "category": "Succulent", "price": 4, "quantity": 5,
	}, http.StatusCreated)
	plantID := decode[map[string]string](t, env.Data)["insertedId"]

	env = ts.expect(http.MethodPost, "/order", "buyer@example.com", map[string]any{"plantId": plantID, "quantity": 2}, http.StatusCreated)
	orderID := decode[map[string]string](t, env.Data)["insertedId"]

	ts.expect(http.MethodDelete, "/order-cancle/"+orderID, "stranger@example.com", nil, http.StatusForbidden)
	ts.expect(http.MethodDelete, "/order-cancle/"+orderID, "buyer@example.com", nil, http.StatusOK)
	ts.expect(http.MethodDelete, "/order-cancle/"+orderID, "buyer@example.com", nil, http.StatusNotFound)
}

func TestStatsWithNoOrders(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("admin@example.com", entity.RoleAdmin)

	env := ts.expect(http.MethodGet, "/stats", "admin@example.com", nil, http.StatusOK)
	stats := decode[map[string]any](t, env.Data)

	if stats["totalOrders"] != float64(0) {
		t.Errorf("totalOrders = %v", stats["totalOrders"])
	}
	if stats["totalRevenue"] != "0" && stats["totalRevenue"] != float64(0) {
		t.Errorf("totalRevenue = %v", stats["totalRevenue"])
	}
	chart, ok := stats["chartData"].([]any)
	if !ok || len(chart) != 0 {
		t.Errorf("chartData = %#v, want []", stats["chartData"])
	}
}

func TestPaymentIntentWithoutGateway(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser("seller@example.com", entity.RoleSeller)

	env := ts.expect(http.MethodPost, "/plants", "seller@example.com", map[string]any{
		"name": "Cactus", "category": "Succulent", "price": 3, "quantity": 5,
	}, http.StatusCreated)
	plantID := decode[map[string]string](t, env.Data)["insertedId"]

	ts.expect(http.MethodPost, "/create-payment-intent", "buyer@example.com",
		map[string]any{"plantId": plantID, "quantity": 1}, http.StatusServiceUnavailable)
	ts.expect(http.MethodPost, "/create-payment-intent", "", map[string]any{"plantId": plantID, "quantity": 1}, http.StatusUnauthorized)
}

func TestHealthAndBanner(t *testing.T) {
	ts := newTestServer(t)

	ts.expect(http.MethodGet, "/", "", nil, http.StatusOK)
	ts.expect(http.MethodGet, "/health", "", nil, http.StatusOK)
}
