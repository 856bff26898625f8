package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags at build time
var (
	GitTag    string
	GitBranch string
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info describes the running binary
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short commit hash, in that order
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return s.Value[:12]
			}
		}
	}
	return "dev"
}

// Metadata returns build information for the named executable
func Metadata(execName string) Info {
	info := Info{
		Name:     execName,
		Version:  Version(),
		Compiler: runtime.Version(),
		Tag:      GitTag,
		Branch:   GitBranch,
	}

	// Add build info from runtime/debug
	var goos, goarch string
	if build, ok := debug.ReadBuildInfo(); ok {
		info.Source = build.Main.Path
		for _, s := range build.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Hash = s.Value
			case "vcs.time":
				info.BuildTime = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
	}
	if goos != "" && goarch != "" {
		info.Platform = goos + "/" + goarch
	}
	return info
}

// JSON returns the build information as indented JSON
func JSON(execName string) []byte {
	data, err := json.MarshalIndent(Metadata(execName), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}
