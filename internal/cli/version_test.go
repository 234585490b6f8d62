package cli

import (
	"runtime/debug"
	"testing"
)

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() {
		readBuildInfo = prevRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.23.4",
			Main: debug.Module{
				Path:    "github.com/cmorrow/canopy",
				Version: "v0.3.1",
			},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
			},
		}, true
	}

	info := currentVersionInfo()

	if info.Version != "v0.3.1" {
		t.Fatalf("Version = %q, want %q", info.Version, "v0.3.1")
	}
	if info.ModulePath != "github.com/cmorrow/canopy" {
		t.Fatalf("ModulePath = %q, want %q", info.ModulePath, "github.com/cmorrow/canopy")
	}
	if info.Commit != "abc123" {
		t.Fatalf("Commit = %q, want %q", info.Commit, "abc123")
	}
	if info.GoVersion != "go1.23.4" {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, "go1.23.4")
	}
}

func TestCurrentVersionInfoWithoutBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() {
		readBuildInfo = prevRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return nil, false
	}

	info := currentVersionInfo()

	if info.Version != "devel" {
		t.Fatalf("Version = %q, want %q", info.Version, "devel")
	}
	if info.ModulePath != defaultModulePath {
		t.Fatalf("ModulePath = %q, want %q", info.ModulePath, defaultModulePath)
	}
}

func TestNormalizeVersion(t *testing.T) {
	if got := normalizeVersion("(devel)"); got != "devel" {
		t.Errorf("normalizeVersion((devel)) = %q", got)
	}
	if got := normalizeVersion("v1.0.0"); got != "v1.0.0" {
		t.Errorf("normalizeVersion(v1.0.0) = %q", got)
	}
}
