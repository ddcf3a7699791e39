package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/container"
	"github.com/oksasatya/catalog-favorites/internal/interface/middleware"
	"github.com/oksasatya/catalog-favorites/pkg/validation"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetConfig(&config.Config{
		StoreDriver:         config.StoreMemory,
		BcryptCost:          bcrypt.MinCost,
		DebugMetricsEnabled: true,
		ESProductsIndex:     "products",
	})
	container.SetLogger(logger)

	r := gin.New()
	reg := NewRegistry(r)
	reg.Use(middleware.RequestIDMiddleware())
	InitModules(reg)
	reg.RegisterAll()
	return r
}

func TestRoutesAreRegistered(t *testing.T) {
	r := newEngine(t)

	body := `{"username":"alice","email":"a@example.com","password":"correct"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("registry middleware not applied")
	}

	for _, path := range []string{"/api/products", "/api/products/top", "/api/health", "/api/debug/vars"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: %d %s", path, w.Code, w.Body.String())
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	if !strings.Contains(w.Body.String(), `"registrations"`) {
		t.Fatalf("debug vars missing counters: %s", w.Body.String())
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r := newEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}
