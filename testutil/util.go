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

// Package testutil holds helpers shared by the package tests
package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	// defaultDirPerm is the default directory permissions (0o750)
	defaultDirPerm = 0o750
	// defaultFilePerm is the default file permissions (0o600)
	defaultFilePerm = 0o600
)

// SetupFiles creates files at path. Keys are slash-separated paths relative
// to path; a key ending in "/" creates an empty directory.
func SetupFiles(path string, files map[string]string) error {
	for p, c := range files {
		fullPath := filepath.Join(path, filepath.FromSlash(p))
		if p != "" && p[len(p)-1] == '/' {
			if err := os.MkdirAll(fullPath, defaultDirPerm); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), defaultDirPerm); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, []byte(c), defaultFilePerm); err != nil {
			return err
		}
	}
	return nil
}

// ReadTree returns the regular files under root keyed by slash-separated
// relative path, with their contents as values
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path) // #nosec G304 - test helper
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("Reading tree %s: %s", root, err)
	}
	return tree
}

// CheckDeepEqual checks if two values are deeply equal using cmp.Diff
func CheckDeepEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if diff := cmp.Diff(actual, expected); diff != "" {
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
		return
	}
}

// CheckErrorAndDeepEqual checks for expected errors and deep equality of values
func CheckErrorAndDeepEqual(t *testing.T, shouldErr bool, err error, expected, actual interface{}) {
	t.Helper()
	if checkErr := checkErr(shouldErr, err); checkErr != nil {
		t.Error(checkErr)
		return
	}
	if !reflect.DeepEqual(expected, actual) {
		diff := cmp.Diff(actual, expected)
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
		return
	}
}

// CheckError checks if the error condition matches expectations
func CheckError(t *testing.T, shouldErr bool, err error) {
	t.Helper()
	if checkErr := checkErr(shouldErr, err); checkErr != nil {
		t.Error(checkErr)
	}
}

func checkErr(shouldErr bool, err error) error {
	if err == nil && shouldErr {
		return fmt.Errorf("expected error, but returned none")
	}
	if err != nil && !shouldErr {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}
