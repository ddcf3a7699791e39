package postgres

import (
	"testing"
	"time"

	"github.com/oksasatya/catalog-favorites/config"
)

func TestPoolConfig_AppliesOptions(t *testing.T) {
	cfg := &config.Config{
		AppName: "catalog", DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "d", DBSSLMode: "disable",
		DBMaxConns: 8, DBMinConns: 2, DBMaxConnLife: time.Hour, DBMaxConnIdle: 10 * time.Minute, DBPingTimeout: time.Second,
	}
	opts := PoolOptionsFrom(cfg)
	if opts.PingTimeout != time.Second {
		t.Fatalf("PingTimeout want 1s, got %v", opts.PingTimeout)
	}

	pc, err := poolConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	if pc.MaxConns != 8 || pc.MinConns != 2 {
		t.Errorf("conns want 8/2, got %d/%d", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != time.Hour || pc.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("lifetimes got %v/%v", pc.MaxConnLifetime, pc.MaxConnIdleTime)
	}
	if got := pc.ConnConfig.RuntimeParams["application_name"]; got != "catalog" {
		t.Errorf("application_name got %q", got)
	}
	if pc.ConnConfig.Host != "db" {
		t.Errorf("host got %q", pc.ConnConfig.Host)
	}
}

func TestPoolConfig_MinAboveMaxIgnored(t *testing.T) {
	pc, err := poolConfig(PoolOptions{DSN: "postgres://u:p@localhost:5432/d", MaxConns: 2, MinConns: 5})
	if err != nil {
		t.Fatal(err)
	}
	if pc.MinConns > pc.MaxConns {
		t.Fatalf("MinConns %d exceeds MaxConns %d", pc.MinConns, pc.MaxConns)
	}
}

func TestPoolConfig_BadDSN(t *testing.T) {
	if _, err := poolConfig(PoolOptions{DSN: "postgres://u:p@localhost:notaport/d"}); err == nil {
		t.Fatal("want parse error")
	}
}
