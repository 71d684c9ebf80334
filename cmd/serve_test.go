package cmd

import (
	"testing"
)

func TestNewServeCmd_Flags(t *testing.T) {
	cmd := newServeCmd()

	tests := []struct {
		flag       string
		defaultsTo string
	}{
		{"transport", "stdio"},
		{"http-addr", ":8080"},
		{"metrics-addr", ":9090"},
		{"yolo", "false"},
		{"disable-streaming", "false"},
		{"metrics-enabled", "true"},
		{"debug", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag %q not registered", tt.flag)
			}
			if f.DefValue != tt.defaultsTo {
				t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.defaultsTo)
			}
		})
	}
}

func TestResolveMetricsConfig_FlagWinsOverEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		enabledSet  bool
		envValue    string
		wantEnabled bool
	}{
		{"explicit disable beats env enable", false, true, "true", false},
		{"explicit enable beats env disable", true, true, "false", true},
		{"env enables when flag unset", false, false, "true", true},
		{"env disables when flag unset", true, false, "false", false},
		{"default kept when env empty", true, false, "", true},
		{"default kept when env unparseable", true, false, "banana", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("METRICS_ENABLED", tt.envValue)
			cfg := resolveMetricsConfig(tt.enabled, ":9090", tt.enabledSet, true)
			if cfg.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", cfg.Enabled, tt.wantEnabled)
			}
		})
	}
}

func TestResolveMetricsConfig_AddrFallback(t *testing.T) {
	t.Setenv("METRICS_ADDR", ":9999")

	cfg := resolveMetricsConfig(true, ":9090", false, false)
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want env fallback %q", cfg.Addr, ":9999")
	}

	cfg = resolveMetricsConfig(true, ":7000", false, true)
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want explicit flag value %q", cfg.Addr, ":7000")
	}
}

func TestRunServe_UnsupportedTransport(t *testing.T) {
	err := runServe("sse", false, ":8080", false, false, MetricsConfig{})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	for _, want := range []string{"serve", "auth", "version"} {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q subcommand", want)
		}
	}
}
