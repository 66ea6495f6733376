package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	t.Setenv("SPENDSENSE_TEST_DIR", "/tmp/spendsense")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain path untouched", path: "/var/data/db", want: "/var/data/db"},
		{name: "bare tilde", path: "~", want: home},
		{name: "tilde prefix", path: "~/data/db", want: filepath.Join(home, "data", "db")},
		{name: "env var", path: "$SPENDSENSE_TEST_DIR/db", want: "/tmp/spendsense/db"},
		{name: "empty", path: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
