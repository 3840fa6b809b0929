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

package envpath

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

const sep = string(os.PathListSeparator)

func TestLibraryPathVar(t *testing.T) {
	assert.Equal(t, "PATH", LibraryPathVar(platform.Windows))
	assert.Equal(t, "DYLD_LIBRARY_PATH", LibraryPathVar(platform.Darwin))
	assert.Equal(t, "LD_LIBRARY_PATH", LibraryPathVar(platform.Linux))
}

func TestAddToLibraryPath(t *testing.T) {
	env := New(nil)
	env.AddToLibraryPath(platform.Linux, "/opt/arnold/bin")
	assert.Equal(t, "/opt/arnold/bin", env.Vars["LD_LIBRARY_PATH"])

	env.AddToLibraryPath(platform.Linux, "/opt/sitoa/lib")
	assert.Equal(t, "/opt/sitoa/lib"+sep+"/opt/arnold/bin", env.Vars["LD_LIBRARY_PATH"])

	env.AddToLibraryPath(platform.Darwin, "/opt/arnold/bin")
	assert.Equal(t, "/opt/arnold/bin", env.Vars["DYLD_LIBRARY_PATH"])
}

func TestAddToProgramPath(t *testing.T) {
	env := New(map[string]string{"PATH": "/usr/bin"})
	env.AddToProgramPath("/opt/arnold/bin")
	assert.Equal(t, "/opt/arnold/bin"+sep+"/usr/bin", env.Vars["PATH"])
}

func TestSetAndResetLibraryPath(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "/usr/lib")

	env := New(nil)
	env.AddToLibraryPath(platform.Linux, "/opt/arnold/bin")
	require.NoError(t, env.SetLibraryPath(platform.Linux))
	assert.Equal(t, "/opt/arnold/bin", os.Getenv("LD_LIBRARY_PATH"))

	require.NoError(t, env.ResetLibraryPath(platform.Linux))
	assert.Equal(t, "/usr/lib", os.Getenv("LD_LIBRARY_PATH"))
}

func TestResetWithoutSetIsNoop(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "/usr/lib")
	t.Setenv("PATH", "/usr/bin")

	env := New(map[string]string{"LD_LIBRARY_PATH": "/opt", "PATH": "/opt/bin"})
	require.NoError(t, env.ResetLibraryPath(platform.Linux))
	require.NoError(t, env.ResetProgramPath())
	assert.Equal(t, "/usr/lib", os.Getenv("LD_LIBRARY_PATH"))
	assert.Equal(t, "/usr/bin", os.Getenv("PATH"))
}

func TestSingleSlot(t *testing.T) {
	t.Setenv("PATH", "/original")

	env := New(map[string]string{"PATH": "/first"})
	require.NoError(t, env.SetProgramPath())
	env.Vars["PATH"] = "/second"
	require.NoError(t, env.SetProgramPath())
	assert.Equal(t, "/second", os.Getenv("PATH"))

	// only the value replaced by the last Set is remembered
	require.NoError(t, env.ResetProgramPath())
	assert.Equal(t, "/first", os.Getenv("PATH"))
}

func TestResetUnsetsPreviouslyMissingVariable(t *testing.T) {
	t.Setenv("DYLD_LIBRARY_PATH", "")
	require.NoError(t, os.Unsetenv("DYLD_LIBRARY_PATH"))

	env := New(map[string]string{"DYLD_LIBRARY_PATH": "/opt/arnold/bin"})
	require.NoError(t, env.SetLibraryPath(platform.Darwin))
	assert.Equal(t, "/opt/arnold/bin", os.Getenv("DYLD_LIBRARY_PATH"))

	require.NoError(t, env.ResetLibraryPath(platform.Darwin))
	_, ok := os.LookupEnv("DYLD_LIBRARY_PATH")
	assert.False(t, ok)
}

func TestSetUnsetVariable(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "/usr/lib")

	env := New(nil)
	err := env.SetLibraryPath(platform.Linux)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsetVariable))
	assert.Equal(t, "/usr/lib", os.Getenv("LD_LIBRARY_PATH"))

	// a failed Set leaves nothing to restore
	require.NoError(t, env.ResetLibraryPath(platform.Linux))
	assert.Equal(t, "/usr/lib", os.Getenv("LD_LIBRARY_PATH"))
}
