package config

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.StoreDriver != StorePostgres {
		t.Errorf("StoreDriver want %q, got %q", StorePostgres, cfg.StoreDriver)
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("BcryptCost want %d, got %d", bcrypt.DefaultCost, cfg.BcryptCost)
	}
	if cfg.ProductCacheTTL != 5*time.Minute {
		t.Errorf("ProductCacheTTL want 5m, got %v", cfg.ProductCacheTTL)
	}
	if cfg.DBPingTimeout != 5*time.Second {
		t.Errorf("DBPingTimeout want 5s, got %v", cfg.DBPingTimeout)
	}
	if cfg.MailSendEnabled {
		t.Error("MailSendEnabled should default to false")
	}
	if len(cfg.ESAddrs()) != 0 {
		t.Errorf("ESAddrs should be empty by default, got %v", cfg.ESAddrs())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("BCRYPT_COST", "6")
	t.Setenv("PRODUCT_CACHE_TTL", "30s")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.StoreDriver != StoreMemory {
		t.Errorf("StoreDriver want %q, got %q", StoreMemory, cfg.StoreDriver)
	}
	if cfg.BcryptCost != 6 {
		t.Errorf("BcryptCost want 6, got %d", cfg.BcryptCost)
	}
	if cfg.ProductCacheTTL != 30*time.Second {
		t.Errorf("ProductCacheTTL want 30s, got %v", cfg.ProductCacheTTL)
	}
	if !cfg.MailSendEnabled {
		t.Error("MailSendEnabled want true")
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("CORSOrigins got %v", origins)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("PRODUCT_CACHE_TTL", "soon")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")

	cfg := Load()
	if cfg.RedisDB != 0 {
		t.Errorf("RedisDB want 0, got %d", cfg.RedisDB)
	}
	if cfg.ProductCacheTTL != 5*time.Minute {
		t.Errorf("ProductCacheTTL want default, got %v", cfg.ProductCacheTTL)
	}
	if cfg.HTTPLogEnabled {
		t.Error("HTTPLogEnabled want default false")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN want %q, got %q", want, got)
	}
}
