package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token TTL 24h, got %s", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Password != "" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" {
		t.Fatalf("unexpected neo4j default URI: %s", cfg.Neo4j.URI)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("NEO4J_PASSWORD", "graph-pass")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected token TTL 1h, got %s", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "redis.internal:6380" || cfg.Redis.Password != "s3cret" {
		t.Fatalf("redis overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Neo4j.Password != "graph-pass" {
		t.Fatalf("neo4j password override not applied")
	}
}
