package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
environment: test
server:
  port: 8080
backend:
  type: none
prices:
  base_url: https://example.com
  probe_lead_days: 45
analytics:
  day_count: 365.25
  trading_days: 252
  vol_window: 20
smtp:
  host: mail.example.com
  use_tls: true
universe_path: config/universe.yaml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prices.ProbeLeadDays != 45 {
		t.Fatalf("expected probe lead 45, got %d", cfg.Prices.ProbeLeadDays)
	}
	if cfg.Analytics.DayCount != 365.25 {
		t.Fatalf("expected day count 365.25, got %v", cfg.Analytics.DayCount)
	}
	if !cfg.SMTP.UseTLS {
		t.Fatal("expected smtp use_tls to decode")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	path := writeFile(t, "config.yaml", `
environment: test
backend:
  type: mongodb
prices:
  base_url: https://example.com
universe_path: config/universe.yaml
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown backend")
	}
}

func TestLoadWithEnvOverridesFredKey(t *testing.T) {
	path := writeFile(t, "config.yaml", `
environment: test
backend:
  type: none
prices:
  base_url: https://example.com
universe_path: config/universe.yaml
`)
	t.Setenv("FRED_API_KEY", "secret")
	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fred.APIKey != "secret" {
		t.Fatalf("expected env override, got %q", cfg.Fred.APIKey)
	}
}

func TestLoadUniverseScalarAndList(t *testing.T) {
	path := writeFile(t, "universe.yaml", `
INDICES:
  "S&P 500": ^GSPC
  "EURO STOXX 600":
    - ^STOXX
    - "STOXX600.Z"
EMPTY: {}
`)
	u, err := LoadUniverse(path)
	if err != nil {
		t.Fatalf("load universe: %v", err)
	}
	if len(u["INDICES"]["S&P 500"]) != 1 || u["INDICES"]["S&P 500"][0] != "^GSPC" {
		t.Fatalf("unexpected scalar candidates %v", u["INDICES"]["S&P 500"])
	}
	got := u["INDICES"]["EURO STOXX 600"]
	if len(got) != 2 || got[0] != "^STOXX" {
		t.Fatalf("unexpected list candidates %v", got)
	}
	if _, ok := u["EMPTY"]; ok {
		t.Fatalf("expected empty category dropped")
	}
}

func TestFlattenSelectedCategories(t *testing.T) {
	u := Universe{
		"A": {"X": {"x1"}},
		"B": {"Y": {"y1"}},
	}
	flat := u.Flatten([]string{"A"})
	if len(flat) != 1 || flat["X"] == nil {
		t.Fatalf("unexpected flatten result %v", flat)
	}
	all := u.Flatten(nil)
	if len(all) != 2 {
		t.Fatalf("expected all categories, got %v", all)
	}
}

func TestParseCustomTickers(t *testing.T) {
	got := ParseCustomTickers(" AAPL, MSFT ,,EWJ ")
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got["Custom AAPL"][0] != "AAPL" {
		t.Fatalf("unexpected candidates %v", got["Custom AAPL"])
	}
}
