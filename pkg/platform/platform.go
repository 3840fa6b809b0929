/*
Copyright 2018 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package platform resolves the host operating system and CPU architecture
// and the target architecture a build is configured for.
package platform

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
)

// OS is a supported operating system name
type OS string

// Arch is a supported CPU architecture name
type Arch string

const (
	// Linux is the Linux operating system
	Linux OS = "linux"
	// Darwin is the macOS operating system
	Darwin OS = "darwin"
	// Windows is the Windows operating system
	Windows OS = "windows"
)

const (
	// X86 is the 32-bit Intel architecture
	X86 Arch = "x86"
	// X86_64 is the 64-bit Intel architecture
	X86_64 Arch = "x86_64" //nolint:revive,stylecheck // name mirrors the architecture string
	// Sparc64 is the 64-bit SPARC architecture
	Sparc64 Arch = "sparc_64"
)

var (
	// ErrUnsupportedOS is returned when the platform name is not a supported OS
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrInvalidTargetArch is returned when a target architecture is not valid for the OS
	ErrInvalidTargetArch = errors.New("target architecture is not valid")
)

var validOSes = []OS{Linux, Darwin, Windows}

var validTargetArchs = map[OS][]Arch{
	Windows: {X86, X86_64},
	Darwin:  {X86, X86_64},
	Linux:   {X86, X86_64, Sparc64},
}

type osArch struct {
	os   OS
	arch Arch
}

var archLabels = map[osArch]string{
	{Windows, X86}:    "win32",
	{Windows, X86_64}: "win64",
	{Darwin, X86}:     "darwin32",
	{Darwin, X86_64}:  "darwin64",
	{Linux, X86}:      "linux_x86",
	{Linux, X86_64}:   "linux_x86_64",
	{Linux, Sparc64}:  "linux_sparc_64",
}

// ValidOSes returns the supported operating systems
func ValidOSes() []OS {
	return append([]OS{}, validOSes...)
}

// ValidTargetArchs returns the target architectures a build on os may select
func ValidTargetArchs(os OS) []Arch {
	return append([]Arch{}, validTargetArchs[os]...)
}

// IsValidTargetArch reports whether arch is in the allow-list for os
func IsValidTargetArch(os OS, arch Arch) bool {
	for _, a := range validTargetArchs[os] {
		if a == arch {
			return true
		}
	}
	return false
}

// ArchLabel returns the short label used in package and directory names
// ('win64', 'linux_x86_64', 'darwin32', ...). Unmapped pairs yield "Unknown".
func ArchLabel(os OS, arch Arch) string {
	if label, ok := archLabels[osArch{os, arch}]; ok {
		return label
	}
	return constants.Unknown
}

// LibraryExtension returns the shared-library file extension for os
func LibraryExtension(os OS) string {
	switch os {
	case Windows:
		return ".dll"
	case Linux:
		return ".so"
	case Darwin:
		return ".dylib"
	default:
		return ""
	}
}

// ExecutableExtension returns the executable file extension for os
func ExecutableExtension(os OS) string {
	if os == Windows {
		return ".exe"
	}
	return ""
}

// Info describes the platform a build runs on and the architecture it targets.
// Values are immutable; use WithTargetArch to derive a retargeted copy.
type Info struct {
	OS         OS   `json:"os"`
	HostArch   Arch `json:"hostArch"`
	TargetArch Arch `json:"targetArch"`
}

// NewInfo returns an Info targeting the host architecture
func NewInfo(os OS, host Arch) Info {
	return Info{OS: os, HostArch: host, TargetArch: host}
}

// WithTargetArch returns a copy of i targeting arch. When arch is not valid
// for i.OS the returned error wraps ErrInvalidTargetArch and i is returned as is.
func (i Info) WithTargetArch(arch Arch) (Info, error) {
	if !IsValidTargetArch(i.OS, arch) {
		return i, errors.Wrapf(ErrInvalidTargetArch, "%q on %s (valid: %v)", arch, i.OS, validTargetArchs[i.OS])
	}
	i.TargetArch = arch
	return i, nil
}

// HostLabel returns the architecture label of the host
func (i Info) HostLabel() string {
	return ArchLabel(i.OS, i.HostArch)
}

// TargetLabel returns the architecture label of the target
func (i Info) TargetLabel() string {
	return ArchLabel(i.OS, i.TargetArch)
}

func (i Info) String() string {
	return fmt.Sprintf("%s/%s (target %s, %s)", i.OS, i.HostArch, i.TargetArch, i.TargetLabel())
}
