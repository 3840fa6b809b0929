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
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/pkg/errors"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
)

// vcsExcludePatterns returns the exclusion patterns matching version-control
// metadata directories at any depth
func vcsExcludePatterns() []string {
	patterns := make([]string, 0, len(constants.VCSMetadataDirs))
	for _, d := range constants.VCSMetadataDirs {
		patterns = append(patterns, "**/"+d)
	}
	return patterns
}

// excludeMatcher decides which paths under root copies and listings leave out
type excludeMatcher struct {
	root string
	pm   *patternmatcher.PatternMatcher
}

func newExcludeMatcher(root string, patterns []string) (*excludeMatcher, error) {
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, "compiling exclude patterns")
	}
	return &excludeMatcher{root: filepath.Clean(root), pm: pm}, nil
}

// excluded reports whether path matches an exclusion pattern relative to
// root. The root itself is never excluded.
func (m *excludeMatcher) excluded(path string) (bool, error) {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return false, errors.Wrapf(err, "relating %s to %s", path, m.root)
	}
	if rel == "." {
		return false, nil
	}
	return m.pm.MatchesOrParentMatches(rel)
}
