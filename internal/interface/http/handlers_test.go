package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/infrastructure/memory"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
	"github.com/oksasatya/catalog-favorites/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := memory.NewStore()
	tx := s.TxManager()
	accounts := application.NewAccountService(s.Users(), tx, helpers.NewBcryptHasher(bcrypt.MinCost), logger, nil, &config.Config{})
	favorites := application.NewFavoriteService(s.Users(), s.Products(), s.Favorites(), tx, logger)
	catalog := application.NewCatalogService(s.Products(), nil, 0, nil, "", logger)

	users := NewUserHandler(accounts, favorites, logger)
	saved := NewFavoriteHandler(favorites, logger)
	products := NewProductHandler(catalog, logger)
	health := NewHealthHandler(map[string]Check{"store": func(context.Context) error { return nil }})

	r := gin.New()
	api := r.Group("/api")
	api.POST("/users/register", users.Register)
	api.POST("/users/login", users.Login)
	api.GET("/users/:id", users.Get)
	api.POST("/users/:id/saved/:productId", saved.SetSaved)
	api.GET("/users/:id/saved", saved.List)
	api.GET("/users/:id/saved-products", saved.List)
	api.GET("/users/:id/saved/:productId/status", saved.Status)
	api.GET("/products", products.List)
	api.GET("/products/available", products.Available)
	api.GET("/products/search", products.Search)
	api.GET("/products/top", products.Top)
	api.GET("/products/:id", products.Get)
	api.GET("/health", health.Health)
	return &testServer{engine: r, store: s}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w, env
}

func (ts *testServer) product(t *testing.T, name string, price float64) entity.Product {
	t.Helper()
	p := entity.Product{Name: name, Category: "home", Price: price, IsAvailable: true}
	if err := ts.store.Products().Save(context.Background(), &p); err != nil {
		t.Fatal(err)
	}
	return p
}

func (ts *testServer) register(t *testing.T, username, email string) application.UserView {
	t.Helper()
	w, env := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": username, "name": "Test", "email": email, "password": "correct",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var v application.UserView
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	v := ts.register(t, "alice", "a@example.com")
	if v.ID == "" || v.SavedProducts == nil || v.SavedProductsCount != 0 {
		t.Fatalf("unexpected view %+v", v)
	}

	w, env := ts.do(t, http.MethodPost, "/api/users/login", map[string]string{"email": "a@example.com", "password": "correct"})
	if w.Code != http.StatusOK || env.Message != "Login successful" {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	lower := strings.ToLower(w.Body.String())
	if strings.Contains(lower, "password") || strings.Contains(w.Body.String(), "$2a$") {
		t.Fatalf("login response leaks credential: %s", w.Body.String())
	}

	w, env = ts.do(t, http.MethodPost, "/api/users/login", map[string]string{"email": "a@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized || env.Message != "Invalid email or password" {
		t.Fatalf("wrong password: %d %s", w.Code, w.Body.String())
	}
	w2, env2 := ts.do(t, http.MethodPost, "/api/users/login", map[string]string{"email": "nobody@example.com", "password": "correct"})
	if w2.Code != w.Code || env2.Message != env.Message {
		t.Fatalf("unknown email must look like wrong password: %d %s", w2.Code, w2.Body.String())
	}
}

func TestRegister_ConflictsAndValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "a@example.com")

	w, env := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "bob", "email": "a@example.com", "password": "correct",
	})
	if w.Code != http.StatusConflict || env.Message != "Email already exists" {
		t.Fatalf("duplicate email: %d %s", w.Code, w.Body.String())
	}
	w, env = ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "b@example.com", "password": "correct",
	})
	if w.Code != http.StatusConflict || env.Message != "Username already exists" {
		t.Fatalf("duplicate username: %d %s", w.Code, w.Body.String())
	}
	w, _ = ts.do(t, http.MethodPost, "/api/users/register", map[string]string{"username": "carol"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: want 400, got %d", w.Code)
	}
}

func TestRegister_MultibytePasswordOverLimit(t *testing.T) {
	ts := newTestServer(t)
	w, env := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@example.com", "password": strings.Repeat("ü", 40),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "must be at most 72 bytes") {
		t.Fatalf("missing password detail: %s", w.Body.String())
	}
	if env.Success {
		t.Fatal("want success=false")
	}
}

func TestGetUser(t *testing.T) {
	ts := newTestServer(t)
	v := ts.register(t, "alice", "a@example.com")

	w, _ := ts.do(t, http.MethodGet, "/api/users/"+v.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get user: %d", w.Code)
	}
	w, env := ts.do(t, http.MethodGet, "/api/users/does-not-exist", nil)
	if w.Code != http.StatusNotFound || env.Message != "User not found" {
		t.Fatalf("missing user: %d %s", w.Code, w.Body.String())
	}
}

func TestSavedProductsFlow(t *testing.T) {
	ts := newTestServer(t)
	u := ts.register(t, "alice", "a@example.com")
	p := ts.product(t, "Lamp", 20)
	base := "/api/users/" + u.ID + "/saved/" + p.ID

	w, env := ts.do(t, http.MethodPost, base+"?save=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}
	var v application.UserView
	_ = json.Unmarshal(env.Data, &v)
	if v.SavedProductsCount != 1 || v.SavedProducts[0] != p.ID {
		t.Fatalf("after save %+v", v)
	}

	// legacy parameter name, and repeated save stays at one
	w, env = ts.do(t, http.MethodPost, base+"?saveProduct=true", nil)
	_ = json.Unmarshal(env.Data, &v)
	if w.Code != http.StatusOK || v.SavedProductsCount != 1 {
		t.Fatalf("repeat save: %d %+v", w.Code, v)
	}

	_, env = ts.do(t, http.MethodGet, base+"/status", nil)
	var st map[string]any
	_ = json.Unmarshal(env.Data, &st)
	if st["isSaved"] != true || st["userId"] != u.ID || st["productId"] != p.ID {
		t.Fatalf("status %v", st)
	}

	for _, path := range []string{"/api/users/" + u.ID + "/saved", "/api/users/" + u.ID + "/saved-products"} {
		_, env = ts.do(t, http.MethodGet, path, nil)
		var products []entity.Product
		_ = json.Unmarshal(env.Data, &products)
		if len(products) != 1 || products[0].Name != "Lamp" {
			t.Fatalf("%s: got %+v", path, products)
		}
	}

	w, env = ts.do(t, http.MethodPost, base+"?save=false", nil)
	_ = json.Unmarshal(env.Data, &v)
	if w.Code != http.StatusOK || v.SavedProductsCount != 0 {
		t.Fatalf("unsave: %d %+v", w.Code, v)
	}

	w, env = ts.do(t, http.MethodPost, base+"?save=false", nil)
	if w.Code != http.StatusBadRequest || env.Message != "User does not have this product saved" {
		t.Fatalf("unsave again: %d %s", w.Code, w.Body.String())
	}

	w, _ = ts.do(t, http.MethodPost, base+"?save=maybe", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad save param: want 400, got %d", w.Code)
	}
}

func TestSetSaved_NotFound(t *testing.T) {
	ts := newTestServer(t)
	u := ts.register(t, "alice", "a@example.com")
	p := ts.product(t, "Lamp", 20)

	w, env := ts.do(t, http.MethodPost, "/api/users/missing/saved/"+p.ID, nil)
	if w.Code != http.StatusNotFound || env.Message != "User not found" {
		t.Fatalf("unknown user: %d %s", w.Code, w.Body.String())
	}
	w, env = ts.do(t, http.MethodPost, "/api/users/"+u.ID+"/saved/missing", nil)
	if w.Code != http.StatusNotFound || env.Message != "Product not found" {
		t.Fatalf("unknown product: %d %s", w.Code, w.Body.String())
	}
}

func TestProducts(t *testing.T) {
	ts := newTestServer(t)
	lamp := ts.product(t, "Lamp", 20)
	ts.product(t, "Desk", 150)

	w, env := ts.do(t, http.MethodGet, "/api/products", nil)
	var products []entity.Product
	_ = json.Unmarshal(env.Data, &products)
	if w.Code != http.StatusOK || len(products) != 2 {
		t.Fatalf("list: %d %+v", w.Code, products)
	}

	_, env = ts.do(t, http.MethodGet, "/api/products/top?limit=1", nil)
	_ = json.Unmarshal(env.Data, &products)
	if len(products) != 1 || products[0].Name != "Desk" {
		t.Fatalf("top: %+v", products)
	}

	_, env = ts.do(t, http.MethodGet, "/api/products/search?q=lam", nil)
	_ = json.Unmarshal(env.Data, &products)
	if len(products) != 1 || products[0].ID != lamp.ID {
		t.Fatalf("search: %+v", products)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/products/"+lamp.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get product: %d", w.Code)
	}
	w, env = ts.do(t, http.MethodGet, "/api/products/missing", nil)
	if w.Code != http.StatusNotFound || env.Message != "Product not found" {
		t.Fatalf("missing product: %d %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w, env := ts.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}

	h := NewHealthHandler(map[string]Check{"redis": func(context.Context) error { return errors.New("down") }})
	r := gin.New()
	r.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("failing check: want 503, got %d", rec.Code)
	}
}
