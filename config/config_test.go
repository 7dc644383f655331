package config

import (
	"strings"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	LoadConfig()

	if AppConfig.AppPort != "8080" {
		t.Fatalf("APP_PORT default = %q, want 8080", AppConfig.AppPort)
	}
	if AppConfig.BaseURL != "https://warramusic.com.au" {
		t.Fatalf("BASE_URL default = %q", AppConfig.BaseURL)
	}
	if AppConfig.ZoomMethodID == "" {
		t.Fatal("ZOOM_METHOD_ID default missing")
	}

	for name, id := range map[string]string{
		"PRICE_PRIVATE_30MIN": AppConfig.PricePrivate30,
		"PRICE_PRIVATE_60MIN": AppConfig.PricePrivate60,
		"PRICE_ZOOM_30MIN":    AppConfig.PriceZoom30,
		"PRICE_ZOOM_60MIN":    AppConfig.PriceZoom60,
	} {
		if !strings.HasPrefix(id, "price_") {
			t.Fatalf("%s default %q is not a price ID", name, id)
		}
	}
}

func TestIsProduction(t *testing.T) {
	LoadConfig()
	if IsProduction() {
		t.Fatalf("default env %q should not be production", AppConfig.Env)
	}

	AppConfig.Env = "production"
	defer func() { AppConfig.Env = "development" }()
	if !IsProduction() {
		t.Fatal("production env not detected")
	}
}
