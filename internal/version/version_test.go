package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "9f8e7d6c5b4a"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	}

	info := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	info.fillFrom(bi)
	assert.Equal(t, Info{Version: "v1.2.0", Commit: "9f8e7d6c5b4a", Date: "2026-03-01T10:00:00Z"}, info)
}

func TestFillFromKeepsLinkerValues(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	}

	info := Info{Version: "1.4.0", Commit: "abcd", Date: "2026-01-02"}
	info.fillFrom(bi)
	assert.Equal(t, Info{Version: "1.4.0", Commit: "abcd", Date: "2026-01-02"}, info)

	dev := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	dev.fillFrom(bi)
	assert.Equal(t, "dev", dev.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.4.0",
		Commit:    "0123456789abcdef",
		Date:      "2026-01-02",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "backoffice 1.4.0 (01234567) built 2026-01-02 with go1.24.6 for linux/amd64", info.String())
	assert.Equal(t, "1.4.0", info.Short())
}

func TestInfoStringShortCommit(t *testing.T) {
	info := Info{Version: "dev", Commit: "abc", Date: "unknown", GoVersion: "go1.24.6", Platform: "darwin/arm64"}

	assert.Contains(t, info.String(), "(abc)")
}
