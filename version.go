package hostapi

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/ambiyansyah-risyal/hostapi.Version=..."
// at release time. Unset values are filled from the binary's build info.
var (
	Version   = "v0.1.0"
	GitCommit = ""
	BuildDate = ""
)

const modulePath = "github.com/ambiyansyah-risyal/hostapi"

// BuildInfo describes the build a binary was produced from.
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	Modified  bool
	GoVersion string
}

// ReadBuildInfo merges the linker-injected values with the VCS stamps the Go
// toolchain records in the binary.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		Date:      BuildDate,
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	mods := append([]*debug.Module{&bi.Main}, bi.Deps...)
	for _, m := range mods {
		if m.Path == modulePath && m.Version != "" && m.Version != "(devel)" {
			info.Version = m.Version
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func (b BuildInfo) String() string {
	commit := b.Commit
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if b.Modified {
		commit += "-dirty"
	}
	date := b.Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("hostapi %s (commit %s, built %s, %s)", b.Version, commit, date, b.GoVersion)
}

// GetVersion returns the one-line version banner printed by the CLI.
func GetVersion() string { return ReadBuildInfo().String() }
