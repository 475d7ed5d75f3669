package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	o := Defaults()
	if o.BaseURL == "" || o.SessionFile == "" || o.TimeoutSeconds <= 0 {
		t.Errorf("incomplete defaults: %+v", o)
	}
}

func TestParse_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	os.WriteFile(cfgPath, []byte(`{"BaseURL":"http://from-file","TimeoutSeconds":30}`), 0o644)

	t.Setenv("STRUCTURA_CONFIG", cfgPath)
	t.Setenv("STRUCTURA_API_URL", "http://from-env")
	t.Setenv("STRUCTURA_TIMEOUT_SECONDS", "")

	o := Parse("")
	if o.BaseURL != "http://from-env" {
		t.Errorf("BaseURL = %q; env must win over file", o.BaseURL)
	}
	if o.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d; file must win over defaults", o.TimeoutSeconds)
	}
}

func TestParse_ExplicitPathWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.json")
	flagPath := filepath.Join(dir, "flag.json")
	os.WriteFile(envPath, []byte(`{"BaseURL":"http://from-env-file"}`), 0o644)
	os.WriteFile(flagPath, []byte(`{"BaseURL":"http://from-flag-file"}`), 0o644)

	t.Setenv("STRUCTURA_CONFIG", envPath)
	t.Setenv("STRUCTURA_API_URL", "")

	o := Parse(flagPath)
	if o.BaseURL != "http://from-flag-file" {
		t.Errorf("BaseURL = %q; explicit config path must win over STRUCTURA_CONFIG", o.BaseURL)
	}
}

func TestGetenvInt_BadValueFallsBack(t *testing.T) {
	t.Setenv("STRUCTURA_TEST_INT", "not-a-number")
	if got := getenvInt("STRUCTURA_TEST_INT", 7); got != 7 {
		t.Errorf("getenvInt = %d; want fallback 7", got)
	}
}
