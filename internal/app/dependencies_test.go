package app

import (
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/shopapi"
)

func TestNewDependencies(t *testing.T) {
	logger := log.WithField("test", "dependencies")
	deps := NewDependencies(DefaultConfig(), logger)

	if deps == nil {
		t.Fatal("NewDependencies should not return nil")
	}

	if deps.Registry == nil {
		t.Error("Registry should not be nil")
	}

	if deps.Catalog == nil {
		t.Error("Catalog should not be nil")
	}

	if deps.Builder == nil {
		t.Error("Builder should not be nil")
	}

	if deps.Products == nil {
		t.Error("Products gateway should not be nil")
	}

	if deps.Orders == nil {
		t.Error("Orders gateway should not be nil")
	}

	if deps.Metrics == nil {
		t.Error("Metrics should not be nil")
	}

	if deps.Logger == nil {
		t.Error("Logger should not be nil")
	}
}

func TestNewDependencies_WithNilLogger(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), nil)

	if deps == nil {
		t.Fatal("NewDependencies should not return nil")
	}

	if deps.Logger == nil {
		t.Error("Logger should be initialized even when nil is passed")
	}
}

func TestNewDependencies_MockBackendWhenNoShopAPIURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShopAPIURL = ""

	deps := NewDependencies(cfg, nil)

	mock, ok := deps.Products.(*shopapi.MockBackend)
	if !ok {
		t.Fatalf("expected mock backend, got %T", deps.Products)
	}
	if deps.Orders != domain.OrderGateway(mock) {
		t.Error("products and orders should share the same mock backend")
	}
}

func TestNewDependencies_HTTPClientWhenShopAPIURLSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShopAPIURL = "https://shop.example.com"

	deps := NewDependencies(cfg, nil)

	if _, ok := deps.Products.(*shopapi.Client); !ok {
		t.Errorf("expected HTTP client gateway, got %T", deps.Products)
	}
}
