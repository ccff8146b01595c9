// ============================================================================
// safestr - Safe String Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and the tool
// Author:      Mike Stoffels
// Created:     2025-08-04
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Library version of pkg/safestr
	Library = "0.1.0"

	// ScriptFormat is the version of the operation script format
	ScriptFormat = "1.0.0"
)

// Build information, set via -ldflags at release time
var (
	Tool      = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "library":
		return Library
	case "script":
		return ScriptFormat
	default:
		return Tool
	}
}

// Info returns the multi-line version banner printed by the tool
func Info() string {
	return fmt.Sprintf("safestr v%s\n"+
		"  Library:    v%s\n"+
		"  Scripts:    v%s\n"+
		"  Git Commit: %s\n"+
		"  Build Date: %s\n"+
		"  Go Version: %s\n"+
		"  OS/Arch:    %s/%s\n",
		Tool, Library, ScriptFormat, GitCommit, BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
