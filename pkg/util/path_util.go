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

package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

// SplitPathList splits a PATH-style value on the OS list separator,
// dropping empty entries
func SplitPathList(value string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// FindInDirs returns dir/name for each of dirs in which name exists
func FindInDirs(fsys afero.Fs, dirs []string, name string) ([]string, error) {
	var found []string
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		ok, err := afero.Exists(fsys, candidate)
		if err != nil {
			return nil, errors.Wrapf(err, "checking %s", candidate)
		}
		if ok {
			found = append(found, candidate)
		}
	}
	return found, nil
}

// FindInPath searches the directories of $PATH for name and returns the
// full path of every match, in PATH order
func FindInPath(fsys afero.Fs, name string) ([]string, error) {
	dirs := SplitPathList(os.Getenv(constants.PathEnv))
	logrus.Tracef("Looking for %s in %v", name, dirs)
	return FindInDirs(fsys, dirs, name)
}

// SafeRemove removes path if it exists. Missing files are not an error.
func SafeRemove(fsys afero.Fs, path string) error {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if !ok {
		return nil
	}
	if err := fsys.Remove(path); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}

// FilepathExists returns true if the path exists
func FilepathExists(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}

// DefaultPath returns the value of the environment variable key, or def
// when it is not set
func DefaultPath(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// EscapedPath doubles backslashes on Windows so the path survives being
// embedded in a C string literal or a generated script
func EscapedPath(o platform.OS, path string) string {
	if o == platform.Windows {
		return strings.ReplaceAll(path, `\`, `\\`)
	}
	return path
}

// StrPartition splits s around the first occurrence of sep, returning the
// part before it, sep itself and the part after it. When sep is not found
// it returns s and two empty strings.
func StrPartition(s, sep string) (before, separator, after string) {
	before, after, found := strings.Cut(s, sep)
	if !found {
		return s, "", ""
	}
	return before, sep, after
}
