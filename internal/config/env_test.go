package config

import (
	"testing"
	"time"
)

func TestResolveBaseURL(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"localhost", localBaseURL},
		{"127.0.0.1", localBaseURL},
		{"LOCALHOST", localBaseURL},
		{"  localhost  ", localBaseURL},
		{"", localBaseURL},
		{"app.locotranz.in", hostedBaseURL},
		{"render-worker-7", hostedBaseURL},
	}
	for _, tc := range cases {
		if got := ResolveBaseURL(tc.host); got != tc.want {
			t.Fatalf("ResolveBaseURL(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOCOTRANZ_API_URL", "http://10.0.0.5:9000")
	t.Setenv("LOCOTRANZ_STATE", "/tmp/locotranz-test.json")
	t.Setenv("LOCOTRANZ_TIMEOUT", "3s")

	env := LoadEnv()
	if env.APIBaseURL != "http://10.0.0.5:9000" {
		t.Fatalf("base url override ignored: %q", env.APIBaseURL)
	}
	if env.StatePath != "/tmp/locotranz-test.json" {
		t.Fatalf("state path override ignored: %q", env.StatePath)
	}
	if env.HTTPTimeout != 3*time.Second {
		t.Fatalf("timeout override ignored: %v", env.HTTPTimeout)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("LOCOTRANZ_API_URL", "http://example.invalid")
	t.Setenv("LOCOTRANZ_TIMEOUT", "not-a-duration")
	t.Setenv("APP_ADDR", "")
	t.Setenv("JWT_SECRET", "")

	env := LoadEnv()
	if env.HTTPTimeout != defaultTimeout {
		t.Fatalf("bad duration should fall back, got %v", env.HTTPTimeout)
	}
	if env.AppAddr != ":8000" {
		t.Fatalf("default listen address wrong: %q", env.AppAddr)
	}
	if env.JWTSecret == "" {
		t.Fatalf("secret must never be empty")
	}
}
