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

// Package envpath edits the search-path variables of a build environment and
// temporarily applies them to the running process.
package envpath

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

// ErrUnsetVariable is returned when applying a variable the build
// environment does not define
var ErrUnsetVariable = errors.New("variable is not set in the build environment")

// LibraryPathVar returns the variable the dynamic loader of o searches
func LibraryPathVar(o platform.OS) string {
	switch o {
	case platform.Windows:
		return constants.PathEnv
	case platform.Darwin:
		return constants.DYLDLibraryPathEnv
	default:
		return constants.LDLibraryPathEnv
	}
}

// saved is a process environment value captured before it was overridden
type saved struct {
	value string
	set   bool
}

// Environment holds the variables a build passes to the tools it runs, and
// the process values they replaced. Only the last saved value of each
// search path is kept.
type Environment struct {
	Vars map[string]string

	previousLibrary *saved
	previousProgram *saved
}

// New returns an Environment over vars. A nil map starts empty.
func New(vars map[string]string) *Environment {
	if vars == nil {
		vars = map[string]string{}
	}
	return &Environment{Vars: vars}
}

func (e *Environment) prepend(key, dir string) {
	if cur, ok := e.Vars[key]; ok {
		e.Vars[key] = dir + string(os.PathListSeparator) + cur
	} else {
		e.Vars[key] = dir
	}
	logrus.Tracef("%s=%s", key, e.Vars[key])
}

// AddToLibraryPath prepends dir to the library search path of o
func (e *Environment) AddToLibraryPath(o platform.OS, dir string) {
	e.prepend(LibraryPathVar(o), dir)
}

// AddToProgramPath prepends dir to PATH
func (e *Environment) AddToProgramPath(dir string) {
	e.prepend(constants.PathEnv, dir)
}

// apply copies key from the build environment into the process environment
// and returns the process value it replaced
func (e *Environment) apply(key string) (*saved, error) {
	value, ok := e.Vars[key]
	if !ok {
		return nil, errors.Wrap(ErrUnsetVariable, key)
	}
	prev, set := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		return nil, errors.Wrapf(err, "setting %s", key)
	}
	logrus.Debugf("Set %s for the build (was %q)", key, prev)
	return &saved{value: prev, set: set}, nil
}

func restore(key string, prev *saved) error {
	if prev == nil {
		return nil
	}
	logrus.Debugf("Restoring %s to %q", key, prev.value)
	if !prev.set {
		return errors.Wrapf(os.Unsetenv(key), "unsetting %s", key)
	}
	return errors.Wrapf(os.Setenv(key, prev.value), "restoring %s", key)
}

// SetLibraryPath applies the library search path of the build environment
// to the process, remembering the value it replaces
func (e *Environment) SetLibraryPath(o platform.OS) error {
	prev, err := e.apply(LibraryPathVar(o))
	if err != nil {
		return err
	}
	e.previousLibrary = prev
	return nil
}

// ResetLibraryPath restores the value replaced by the last SetLibraryPath.
// It does nothing when SetLibraryPath was never called.
func (e *Environment) ResetLibraryPath(o platform.OS) error {
	return restore(LibraryPathVar(o), e.previousLibrary)
}

// SetProgramPath applies PATH of the build environment to the process,
// remembering the value it replaces
func (e *Environment) SetProgramPath() error {
	prev, err := e.apply(constants.PathEnv)
	if err != nil {
		return err
	}
	e.previousProgram = prev
	return nil
}

// ResetProgramPath restores the value replaced by the last SetProgramPath.
// It does nothing when SetProgramPath was never called.
func (e *Environment) ResetProgramPath() error {
	return restore(constants.PathEnv, e.previousProgram)
}
