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

// Package version extracts version strings from the C/C++ sources and
// headers of the plugin and of the SDKs it is built against.
package version

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
)

var (
	// ErrFileNotFound is returned when the file to scan does not exist
	ErrFileNotFound = errors.New("version file not found")
	// ErrMalformed is returned for requests that cannot be satisfied, such as
	// asking for more components than a scheme defines
	ErrMalformed = errors.New("malformed version request")
)

// Status tells whether every requested component was found
type Status int

const (
	// StatusOK means all requested components were found
	StatusOK Status = iota
	// StatusTokenMissing means at least one requested token was absent
	StatusTokenMissing
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTokenMissing:
		return "token missing"
	default:
		return "unknown"
	}
}

// Token binds a #define name to one version component
type Token struct {
	// Name is the macro name, e.g. SITOA_MAJOR_VERSION_NUM
	Name string
	// Field names the component, e.g. "major"
	Field string
	// Clean post-processes the raw macro value; nil keeps it as is
	Clean func(string) string
}

// Scheme is an ordered list of tokens; component i of a version is the
// value of Tokens[i]
type Scheme struct {
	Name   string
	Tokens []Token
}

// Version is the result of scanning a file with a Scheme
type Version struct {
	Scheme     string   `json:"scheme"`
	Components []string `json:"components"`
	// Missing lists the macro names that were requested but not found
	Missing []string `json:"missing,omitempty"`
	Status  Status   `json:"status"`
}

// String joins the components with dots. Missing components are empty,
// which yields strings such as "5..".
func (v *Version) String() string {
	return strings.Join(v.Components, ".")
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// unquoteWide strips quotes and the L prefix of a wide string literal
func unquoteWide(s string) string {
	return unquote(strings.TrimPrefix(s, "L"))
}

// SItoA reads the plugin version from plugins/sitoa/version.cpp
var SItoA = Scheme{
	Name: "sitoa",
	Tokens: []Token{
		{Name: "SITOA_MAJOR_VERSION_NUM", Field: "major"},
		{Name: "SITOA_MINOR_VERSION_NUM", Field: "minor"},
		{Name: "SITOA_FIX_VERSION", Field: "fix", Clean: unquoteWide},
	},
}

// Arnold reads the renderer version from include/ai_version.h
var Arnold = Scheme{
	Name: "arnold",
	Tokens: []Token{
		{Name: "AI_VERSION_ARCH_NUM", Field: "arch"},
		{Name: "AI_VERSION_MAJOR_NUM", Field: "major"},
		{Name: "AI_VERSION_MINOR_NUM", Field: "minor"},
		{Name: "AI_VERSION_FIX", Field: "fix", Clean: unquote},
	},
}

func openVersionFile(path string) (*os.File, error) {
	f, err := os.Open(path) // #nosec G304 - path is chosen by the build configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return f, nil
}

// maxLineSize bounds a single source line
const maxLineSize = 16 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return scanner
}

// Extract scans path line by line for '#define NAME VALUE' lines naming
// tokens of scheme and assembles the first components values.
func Extract(path string, scheme Scheme, components int) (*Version, error) {
	if components < 1 || components > len(scheme.Tokens) {
		return nil, errors.Wrapf(ErrMalformed, "%s defines 1 to %d components, %d requested",
			scheme.Name, len(scheme.Tokens), components)
	}
	f, err := openVersionFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	byName := make(map[string]Token, len(scheme.Tokens))
	for _, tok := range scheme.Tokens {
		byName[tok.Name] = tok
	}

	found := map[string]string{}
	scanner := newLineScanner(f)
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		if !strings.HasPrefix(line, constants.DefineDirective) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		tok, ok := byName[fields[1]]
		if !ok {
			continue
		}
		value := fields[2]
		if tok.Clean != nil {
			value = tok.Clean(value)
		}
		found[tok.Name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	v := &Version{Scheme: scheme.Name, Status: StatusOK}
	for _, tok := range scheme.Tokens[:components] {
		value, ok := found[tok.Name]
		if !ok {
			v.Missing = append(v.Missing, tok.Name)
			v.Status = StatusTokenMissing
		}
		v.Components = append(v.Components, value)
	}
	if v.Status != StatusOK {
		logrus.Debugf("%s: %s version is missing %v", path, scheme.Name, v.Missing)
	}
	return v, nil
}

// SItoAVersion returns the first components of the plugin version (usually 3)
func SItoAVersion(path string, components int) (*Version, error) {
	return Extract(path, SItoA, components)
}

// ArnoldVersion returns the first components of the Arnold version (usually 4)
func ArnoldVersion(path string, components int) (*Version, error) {
	return Extract(path, Arnold, components)
}

const softimageToken = "XSISDK_VERSION"

var softimageVersionRx = regexp.MustCompile(`#\s*define\s+` + softimageToken + `\s+(\S+)`)

// SoftimageHeader returns the location of the SDK version header under sdkRoot
func SoftimageHeader(sdkRoot string) string {
	return filepath.Join(sdkRoot, "include", "xsi_version.h")
}

// SoftimageVersion reads XSISDK_VERSION from the SDK rooted at sdkRoot
func SoftimageVersion(sdkRoot string) (*Version, error) {
	path := SoftimageHeader(sdkRoot)
	f, err := openVersionFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for scanner.Scan() {
		if m := softimageVersionRx.FindStringSubmatch(scanner.Text()); m != nil {
			return &Version{Scheme: "softimage", Components: []string{m[1]}, Status: StatusOK}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return &Version{
		Scheme:     "softimage",
		Components: []string{""},
		Missing:    []string{softimageToken},
		Status:     StatusTokenMissing,
	}, nil
}
