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


// Package vcs reads revision metadata from the working copy a build runs in.
package vcs

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
)

const (
	originRemote = "origin"
	shortHashLen = 7
)

// Revision identifies the commit a working copy is at
type Revision struct {
	// ID is the abbreviated HEAD commit hash
	ID string
	// URL is the fetch URL of the origin remote
	URL string
}

func (r Revision) String() string {
	return r.ID + " " + r.URL
}

// LatestRevision opens the repository containing dir, searching parent
// directories for the .git metadata, and reports its HEAD commit and origin
// URL. Fields that cannot be determined are set to constants.NotFound.
func LatestRevision(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Revision{}, errors.Wrapf(err, "opening repository at %s", dir)
	}

	rev := Revision{ID: constants.NotFound, URL: constants.NotFound}

	head, err := repo.Head()
	switch {
	case err == nil:
		rev.ID = shortHash(head.Hash())
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		logrus.Debugf("Repository at %s has no commits", dir)
	default:
		return Revision{}, errors.Wrap(err, "resolving HEAD")
	}

	remote, err := repo.Remote(originRemote)
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			rev.URL = urls[0]
		}
	case errors.Is(err, git.ErrRemoteNotFound):
		logrus.Debugf("Repository at %s has no %s remote", dir, originRemote)
	default:
		return Revision{}, errors.Wrapf(err, "reading remote %s", originRemote)
	}

	return rev, nil
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:shortHashLen]
}
