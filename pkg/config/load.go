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

package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Gosayram/sitoa-buildtools/pkg/util"
)

// knownKeys are the yaml names of the Options fields
var knownKeys = map[string]bool{
	"SHCXX":                 true,
	"XSISDK_ROOT":           true,
	"ARNOLD_HOME":           true,
	"TARGET_WORKGROUP_PATH": true,
	"WARN_LEVEL":            true,
	"MODE":                  true,
	"SHOW_CMDS":             true,
	"TARGET_ARCH":           true,
	"MSVC_VERSION":          true,
	"VS_HOME":               true,
	"WINDOWS_KIT":           true,
}

// Load reads a configuration file. Files ending in .yaml or .yml are YAML
// documents; .py files use the flat 'KEY = value' assignments of a SCons
// custom.py. Variables the file omits keep their Defaults.
func Load(path string) (Options, error) {
	f, err := os.Open(path) // #nosec G304 - path is given by the user
	if err != nil {
		return Options{}, errors.Wrap(err, "opening build configuration")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f, path)
	case ".py":
		return ReadLegacy(f, path)
	default:
		return Options{}, errors.Wrapf(ErrInvalidOption, "unsupported configuration format %q", filepath.Ext(path))
	}
}

// ReadYAML decodes a YAML configuration; source names it in messages
func ReadYAML(r io.Reader, source string) (Options, error) {
	raw := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, errors.Wrapf(err, "parsing %s", source)
	}
	return decode(raw, source)
}

// ReadLegacy decodes the 'KEY = value' assignments of a SCons custom.py.
// Values may be plain or raw (r'...') quoted strings, True/False or integers;
// '#' starts a comment outside of quotes.
func ReadLegacy(r io.Reader, source string) (Options, error) {
	raw := map[string]interface{}{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, sep, value := util.StrPartition(line, "=")
		if sep == "" {
			return Options{}, errors.Wrapf(ErrInvalidOption, "%s:%d: expected KEY = value", source, lineNo)
		}
		v, err := parseLegacyValue(strings.TrimSpace(value))
		if err != nil {
			return Options{}, errors.Wrapf(err, "%s:%d", source, lineNo)
		}
		raw[strings.TrimSpace(key)] = v
	}
	if err := scanner.Err(); err != nil {
		return Options{}, errors.Wrapf(err, "reading %s", source)
	}
	return decode(raw, source)
}

func parseLegacyValue(s string) (interface{}, error) {
	raw := false
	if len(s) > 1 && (s[0] == 'r' || s[0] == 'R') && (s[1] == '\'' || s[1] == '"') {
		raw = true
		s = s[1:]
	}
	if s != "" && (s[0] == '\'' || s[0] == '"') {
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return nil, errors.Wrapf(ErrInvalidOption, "unterminated string %s", s)
		}
		str, rest := s[1:end+1], strings.TrimSpace(s[end+2:])
		if rest != "" && !strings.HasPrefix(rest, "#") {
			return nil, errors.Wrapf(ErrInvalidOption, "unexpected %q after string", rest)
		}
		if !raw {
			str = strings.ReplaceAll(str, `\\`, `\`)
		}
		return str, nil
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	return nil, errors.Wrapf(ErrInvalidOption, "unsupported value %q", s)
}

func decode(raw map[string]interface{}, source string) (Options, error) {
	for k := range raw {
		if !knownKeys[k] {
			logrus.Warnf("%s: ignoring unknown build variable %s", source, k)
			delete(raw, k)
		}
	}
	opts := Defaults()
	b, err := yaml.Marshal(raw)
	if err != nil {
		return Options{}, errors.Wrapf(err, "decoding %s", source)
	}
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return Options{}, errors.Wrapf(err, "decoding %s", source)
	}
	logrus.Debugf("Loaded %s: %s", source, opts.String())
	return opts, nil
}

// WriteYAML encodes o as a YAML configuration
func (o *Options) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	return enc.Close()
}

// WriteLegacy writes o as SCons custom.py assignments
func (o *Options) WriteLegacy(w io.Writer) error {
	b, err := yaml.Marshal(o)
	if err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	fields := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &fields); err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		var value string
		switch v := fields[k].(type) {
		case bool:
			value = "False"
			if v {
				value = "True"
			}
		case int:
			value = strconv.Itoa(v)
		default:
			value = rawString(toString(v))
		}
		if _, err := bw.WriteString(k + " = " + value + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// rawString quotes s as a python raw string literal
func rawString(s string) string {
	if strings.Contains(s, "'") {
		return `r"` + s + `"`
	}
	return "r'" + s + "'"
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := yaml.Marshal(v)
	return strings.TrimSpace(string(b))
}
