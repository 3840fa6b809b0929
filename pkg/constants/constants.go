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

// Package constants defines common constants used throughout the build tools
// including environment variable names, version-control directories and defaults
package constants

const (
	// PathEnv is the environment variable holding the executable search path
	PathEnv = "PATH"
	// LDLibraryPathEnv is the shared-library search path on Linux
	LDLibraryPathEnv = "LD_LIBRARY_PATH"
	// DYLDLibraryPathEnv is the shared-library search path on macOS
	DYLDLibraryPathEnv = "DYLD_LIBRARY_PATH"

	// ProcessorArchitectureEnv reports the architecture of the running process on Windows
	ProcessorArchitectureEnv = "PROCESSOR_ARCHITECTURE"
	// ProcessorArchiteW6432Env is set for 32-bit processes running on a 64-bit Windows
	ProcessorArchiteW6432Env = "PROCESSOR_ARCHITEW6432"
	// ProcessorAMD64 is the value Windows reports for x86_64 processors
	ProcessorAMD64 = "AMD64"

	// SVNDir is the Subversion metadata directory skipped by copies and listings
	SVNDir = ".svn"
	// GitDir is the Git metadata directory skipped by copies and listings
	GitDir = ".git"

	// NotFound is reported for revision fields that cannot be determined
	NotFound = "not found"
	// Unknown is the architecture label for unmapped OS/architecture pairs
	Unknown = "Unknown"

	// DefineDirective starts the lines version extractors look at
	DefineDirective = "#define"

	// XSISDKRootEnv locates the Softimage SDK when the configuration omits it
	XSISDKRootEnv = "XSISDK_ROOT"
	// ArnoldHomeEnv locates the Arnold SDK when the configuration omits it
	ArnoldHomeEnv = "ARNOLD_HOME"
	// DefaultConfigFile is the configuration read when none is given
	DefaultConfigFile = "custom.py"

	// StackLogPathEnv enables stack sampling of the CLI when set
	StackLogPathEnv = "STACKLOG_PATH"
)

// VCSMetadataDirs are the version-control directories copies and listings leave out
var VCSMetadataDirs = []string{SVNDir, GitDir}
