// Package settings provides build metadata, per-run options and the context
// helpers that carry them through the lawlens commands.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "lawlens"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options of a single invocation. Interactive runs own the
// terminal, so their logs go to a file instead of stderr.
type Run struct {
	MinLogLevel  int8
	Interactive  bool
	LogFile      string
	OutputFormat string
	IsQuiet      bool
	NoColor      bool
	Ephemeral    bool
}

// NewCliParams returns the defaults for a one-shot command.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:  0,
		OutputFormat: "text",
	}
}
