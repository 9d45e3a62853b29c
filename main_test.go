package main

import (
	"runtime/debug"
	"testing"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name     string
		linked   string
		info     *debug.BuildInfo
		ok       bool
		expected string
	}{
		{"linker flag wins", "1.2.0", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, true, "1.2.0"},
		{"module version", "dev", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, true, "v0.9.0"},
		{"local build", "dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true, "dev"},
		{"no build info", "dev", nil, false, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := version
			version = tt.linked
			defer func() { version = saved }()

			if got := versionString(tt.info, tt.ok); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
