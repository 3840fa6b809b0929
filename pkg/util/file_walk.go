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
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// extensionSet normalises extensions to their dotted form
func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// ListFilesWithExtensions walks root and returns the files whose extension
// is one of extensions ('.cpp' and 'cpp' are equivalent). Paths are
// slash-separated, relative to root and sorted; version-control metadata
// directories are not descended into.
func ListFilesWithExtensions(root string, extensions []string) ([]string, error) {
	root = filepath.Clean(root)
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "listing files")
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("listing files: %s is not a directory", root)
	}

	m, err := newExcludeMatcher(root, vcsExcludePatterns())
	if err != nil {
		return nil, err
	}
	valid := extensionSet(extensions)
	var files []string
	err = godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, ent *godirwalk.Dirent) error {
			if ent.IsDir() {
				skip, err := m.excluded(path)
				if err != nil {
					return err
				}
				if skip {
					logrus.Tracef("Skipping paths under '%s', as it is a version-control directory", path)
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := valid[filepath.Ext(ent.Name())]; !ok {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			logrus.Debugf("Not listing %s: %v", path, err)
			return godirwalk.SkipNode
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}
	sort.Strings(files)
	return files, nil
}
