package config

import (
	"context"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: want 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env: want development, got %q", cfg.Env)
	}
	if cfg.Mongo.Database != "product_catalog" {
		t.Errorf("Mongo.Database: got %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr: got %q", cfg.Redis.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9999")
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("CLIENT_URL", "https://store.example.com")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("Mongo.URI: got %q", cfg.Mongo.URI)
	}
	if cfg.ClientURL != "https://store.example.com" {
		t.Errorf("ClientURL: got %q", cfg.ClientURL)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}
