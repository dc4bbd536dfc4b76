package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFill(t *testing.T) {
	reset(t)
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
		},
	})
	if got := Get(); got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2024-05-01T10:00:00Z"}) {
		t.Errorf("Get() = %+v", got)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	reset(t)
	Version, Commit = "v9.0.0", "feedface"
	fill(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})
	if Version != "v9.0.0" || Commit != "feedface" {
		t.Errorf("ldflags values overwritten: %s %s", Version, Commit)
	}
}

func TestTemplate(t *testing.T) {
	reset(t)
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version dev") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: none") {
		t.Errorf("String() = %q", String())
	}
}
