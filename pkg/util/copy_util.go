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

	otiai10Cpy "github.com/otiai10/copy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrDestinationExists is returned when the destination of a directory copy
// is already present
var ErrDestinationExists = errors.New("destination already exists")

// copyOptions configures otiai10.copy to leave out the paths m excludes
func copyOptions(m *excludeMatcher) otiai10Cpy.Options {
	return otiai10Cpy.Options{
		Skip: func(srcinfo os.FileInfo, src, _ string) (bool, error) {
			if !srcinfo.IsDir() {
				return false, nil
			}
			skip, err := m.excluded(src)
			if skip {
				logrus.Tracef("Skipping %s, as it is a version-control directory", src)
			}
			return skip, err
		},
		OnSymlink: func(string) otiai10Cpy.SymlinkAction {
			return otiai10Cpy.Shallow
		},
		PreserveTimes: true,
	}
}

// CopyDirRecursive copies the directory src to dest, which must not exist yet.
// Files keep their mode and modification time, symlinks are recreated as
// links and version-control metadata directories are left out.
func CopyDirRecursive(src, dest string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "copying dir")
	}
	if !fi.IsDir() {
		return errors.Errorf("copying dir: %s is not a directory", src)
	}
	if FilepathExists(dest) {
		return errors.Wrapf(ErrDestinationExists, "copying dir to %s", dest)
	}
	m, err := newExcludeMatcher(src, vcsExcludePatterns())
	if err != nil {
		return err
	}
	logrus.Debugf("Copying %s to %s", src, dest)
	if err := otiai10Cpy.Copy(src, dest, copyOptions(m)); err != nil {
		return errors.Wrapf(err, "copying %s to %s", src, dest)
	}
	return nil
}
