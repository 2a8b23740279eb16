package buildinfo

import (
	"runtime/debug"
)

const length = 7

// Revision returns the short vcs revision of the current build, empty when unknown.
// A "-dirty" suffix is added when the tree had local modifications.
func Revision() (rev string) {
	rev = get("vcs.revision")
	if len(rev) > length {
		rev = rev[:length]
	}
	if rev != "" && get("vcs.modified") == "true" {
		rev += "-dirty"
	}
	return
}

// Version returns the main module version, "devel" for builds from a working tree.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}
	return info.Main.Version
}

// LogAttrs returns the build details as key value pairs ready for the structured logger.
func LogAttrs() []any {
	return []any{"version", Version(), "revision", Revision()}
}

func get(key string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == key {
				return setting.Value
			}
		}
	}
	return ""
}
