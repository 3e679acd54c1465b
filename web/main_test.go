package main

import "testing"

func TestNewRootCommand_Defaults(t *testing.T) {
	flags := newRootCommand().Flags()

	tests := []struct {
		name     string
		expected string
	}{
		{"port", "8080"},
		{"static", ""},
		{"texture-dir", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("Expected flag --%s", tt.name)
			}
			if flag.DefValue != tt.expected {
				t.Errorf("Expected default %q, got %q", tt.expected, flag.DefValue)
			}
		})
	}
}
