package config

import (
	"testing"
	"time"
)

func TestPricingValidateDefaults(t *testing.T) {
	t.Parallel()

	p := PricingConfig{
		TaxRate:               "0.18",
		FlatShippingFee:       "99",
		FreeShippingThreshold: "999",
		CartMaxAge:            168 * time.Hour,
	}
	if err := p.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.TaxRateDecimal().String(); got != "0.18" {
		t.Fatalf("unexpected tax rate: %s", got)
	}
}

func TestPricingValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	p := PricingConfig{
		TaxRate:               "eighteen percent",
		FlatShippingFee:       "99",
		FreeShippingThreshold: "999",
		CartMaxAge:            time.Hour,
	}
	if err := p.validate(); err == nil {
		t.Fatal("expected error for unparseable tax rate")
	}
}

func TestPricingValidateRejectsNegative(t *testing.T) {
	t.Parallel()

	p := PricingConfig{
		TaxRate:               "0.18",
		FlatShippingFee:       "-5",
		FreeShippingThreshold: "999",
		CartMaxAge:            time.Hour,
	}
	if err := p.validate(); err == nil {
		t.Fatal("expected error for negative shipping fee")
	}
}

func TestDBValidate(t *testing.T) {
	t.Parallel()

	if err := (DBConfig{}).validate(false); err == nil {
		t.Fatal("expected error when DSN missing and sqlite disabled")
	}
	if err := (DBConfig{SQLitePath: "verdantly.db"}).validate(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (DBConfig{SQLitePath: "  "}).validate(true); err == nil {
		t.Fatal("expected error for blank sqlite path")
	}
}

func TestRedisEnabled(t *testing.T) {
	t.Parallel()

	if (RedisConfig{}).Enabled() {
		t.Fatal("empty redis config must be disabled")
	}
	if !(RedisConfig{URL: "redis://localhost:6379"}).Enabled() {
		t.Fatal("url-configured redis must be enabled")
	}
	if !(RedisConfig{Address: "localhost:6379"}).Enabled() {
		t.Fatal("addr-configured redis must be enabled")
	}
}
