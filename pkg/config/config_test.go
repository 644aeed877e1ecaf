package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/routing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Routing.SpanCap != routing.DefaultSpanCap {
		t.Errorf("SpanCap = %d, want %d", cfg.Routing.SpanCap, routing.DefaultSpanCap)
	}
	if err := cfg.Routing.Settings().Validate(); err != nil {
		t.Errorf("default routing settings invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantWait float64
		wantCap  int
		wantAddr string
		wantRead time.Duration
		wantLvl  string
	}{
		{
			name: "toml",
			file: "transitcat.toml",
			content: `
[routing]
wait_time = 2.5
span_cap = 20

[server]
addr = ":9090"
read_timeout = "3s"

[log]
level = "debug"
`,
			wantWait: 2.5, wantCap: 20, wantAddr: ":9090", wantRead: 3 * time.Second, wantLvl: "debug",
		},
		{
			name: "yaml",
			file: "transitcat.yaml",
			content: `
routing:
  wait_time: 1
  span_cap: 7
server:
  read_timeout: 1m
`,
			wantWait: 1, wantCap: 7, wantAddr: ":8080", wantRead: time.Minute, wantLvl: "info",
		},
		{
			name:     "empty yml keeps defaults",
			file:     "empty.yml",
			content:  "",
			wantWait: 6, wantCap: routing.DefaultSpanCap, wantAddr: ":8080", wantRead: 5 * time.Second, wantLvl: "info",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Routing.WaitTime != tt.wantWait {
				t.Errorf("WaitTime = %v, want %v", cfg.Routing.WaitTime, tt.wantWait)
			}
			if cfg.Routing.Velocity != 40 {
				t.Errorf("Velocity = %v, want default 40", cfg.Routing.Velocity)
			}
			if cfg.Routing.SpanCap != tt.wantCap {
				t.Errorf("SpanCap = %d, want %d", cfg.Routing.SpanCap, tt.wantCap)
			}
			if cfg.Server.Addr != tt.wantAddr {
				t.Errorf("Addr = %q, want %q", cfg.Server.Addr, tt.wantAddr)
			}
			if cfg.Server.ReadTimeout.Duration != tt.wantRead {
				t.Errorf("ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, tt.wantRead)
			}
			if cfg.Log.Level != tt.wantLvl {
				t.Errorf("Level = %q, want %q", cfg.Log.Level, tt.wantLvl)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.Code
	}{
		{"negative wait", "c.toml", "[routing]\nwait_time = -1\n", errors.ErrCodeInvalidConfig},
		{"zero velocity", "c.yaml", "routing:\n  velocity: 0\n", errors.ErrCodeInvalidConfig},
		{"zero span cap", "c.toml", "[routing]\nspan_cap = 0\n", errors.ErrCodeInvalidConfig},
		{"bad level", "c.yml", "log:\n  level: loud\n", errors.ErrCodeInvalidConfig},
		{"bad duration", "c.toml", "[server]\nread_timeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"unknown yaml key", "c.yaml", "routing:\n  speed: 3\n", errors.ErrCodeInvalidFormat},
		{"malformed toml", "c.toml", "[routing\n", errors.ErrCodeInvalidFormat},
		{"unknown extension", "c.json", "{}", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Load error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Resolve(\"\") = %+v, want defaults", cfg)
	}

	path := writeFile(t, "env.toml", "[server]\naddr = \":7000\"\n")
	t.Setenv(EnvPath, path)
	cfg, err = Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %q, want :7000 from %s", cfg.Server.Addr, EnvPath)
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"a.toml":    "toml",
		"a.TOML":    "toml",
		"a.yaml":    "yaml",
		"dir/a.yml": "yaml",
		"a.json":    "",
		"noext":     "",
	}
	for path, want := range tests {
		if got := Format(path); got != want {
			t.Errorf("Format(%q) = %q, want %q", path, got, want)
		}
	}
}
