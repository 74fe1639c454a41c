package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "imgx" {
		t.Errorf("Use = %q", root.Use)
	}

	want := map[string]bool{
		"serve":      false,
		"render":     false,
		"presets":    false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug logged at info level")
	}

	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug not logged after SetLogLevel")
	}
}

func TestParseStyleFlags(t *testing.T) {
	props, err := parseStyleFlags([]string{"bgColor=1e40af", "fontSizes=40,30"})
	if err != nil {
		t.Fatalf("parseStyleFlags() failed: %v", err)
	}
	if props["bgColor"] != "1e40af" || props["fontSizes"] != "40,30" {
		t.Errorf("props = %v", props)
	}

	if props, _ := parseStyleFlags(nil); props != nil {
		t.Errorf("no flags should yield nil, got %v", props)
	}

	for _, bad := range []string{"noequals", "=value"} {
		if _, err := parseStyleFlags([]string{bad}); err == nil {
			t.Errorf("flag %q should be rejected", bad)
		}
	}
}
