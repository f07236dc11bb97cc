package context

import (
	"fmt"
	"runtime/debug"
)

// VersionInfo describes the build version of the running binary.
type VersionInfo struct {
	Semantic string
	Commit   string
	Dirty    bool
}

// String returns the human-readable version.
func (v *VersionInfo) String() string {
	out := v.Semantic
	if v.Commit != "" {
		commit := v.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		out = fmt.Sprintf("%s (%s)", out, commit)
	}
	if v.Dirty {
		out += " dirty"
	}

	return out
}

// GetVersion extracts the version information embedded in the binary.
func GetVersion() (*VersionInfo, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("failed reading build info")
	}

	v := &VersionInfo{Semantic: info.Main.Version}
	if v.Semantic == "" || v.Semantic == "(devel)" {
		v.Semantic = "devel"
	}

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			v.Commit = kv.Value
		case "vcs.modified":
			v.Dirty = kv.Value == "true"
		}
	}

	return v, nil
}
