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
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
	"github.com/Gosayram/sitoa-buildtools/testutil"
)

func TestSplitPathList(t *testing.T) {
	sep := string(os.PathListSeparator)
	got := SplitPathList("/usr/bin" + sep + sep + "/bin" + sep)
	assert.Equal(t, []string{"/usr/bin", "/bin"}, got)
	assert.Empty(t, SplitPathList(""))
}

func TestFindInDirs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/opt/a/bin/kick", []byte("x"), 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/opt/c/bin/kick", []byte("x"), 0o755))
	require.NoError(t, fsys.MkdirAll("/opt/b/bin", 0o755))

	got, err := FindInDirs(fsys, []string{"/opt/a/bin", "/opt/b/bin", "/missing", "/opt/c/bin"}, "kick")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/opt/a/bin", "kick"), filepath.Join("/opt/c/bin", "kick")}, got)

	// existing directories that do not contain the file are not reported
	got, err = FindInDirs(fsys, []string{"/opt/b/bin"}, "kick")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindInPath(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	require.NoError(t, testutil.SetupFiles(dirB, map[string]string{"scons": "#!/bin/sh\n"}))
	t.Setenv("PATH", dirA+string(os.PathListSeparator)+dirB)

	got, err := FindInPath(afero.NewOsFs(), "scons")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dirB, "scons")}, got)
}

func TestSafeRemove(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/build/sitoa.so", []byte("elf"), 0o644))

	require.NoError(t, SafeRemove(fsys, "/build/sitoa.so"))
	ok, err := afero.Exists(fsys, "/build/sitoa.so")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, SafeRemove(fsys, "/build/sitoa.so"))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("ARNOLD_HOME", "/opt/arnold")
	assert.Equal(t, "/opt/arnold", DefaultPath("ARNOLD_HOME", "/usr/arnold"))
	assert.Equal(t, "/usr/xsisdk", DefaultPath("SITOA_TEST_UNSET_VARIABLE", "/usr/xsisdk"))
}

func TestEscapedPath(t *testing.T) {
	assert.Equal(t, `C:\\Program Files\\Arnold`, EscapedPath(platform.Windows, `C:\Program Files\Arnold`))
	assert.Equal(t, `/usr/a\b`, EscapedPath(platform.Linux, `/usr/a\b`))
}

func TestStrPartition(t *testing.T) {
	tests := []struct {
		s, sep                   string
		before, separator, after string
	}{
		{"key=value", "=", "key", "=", "value"},
		{"a=b=c", "=", "a", "=", "b=c"},
		{"novalue", "=", "novalue", "", ""},
		{"left::right", "::", "left", "::", "right"},
	}
	for _, tt := range tests {
		b, s, a := StrPartition(tt.s, tt.sep)
		assert.Equal(t, []string{tt.before, tt.separator, tt.after}, []string{b, s, a}, tt.s)
	}
}

func TestCopyDirRecursive(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutil.SetupFiles(src, map[string]string{
		"plugins/sitoa.js":           "js",
		"plugins/helpers/Arnold.js":  "helper",
		"plugins/.svn/entries":       "svn",
		".git/HEAD":                  "ref",
		"shaders/bin/sitoa_shaders":  "bin",
		"empty/":                     "",
		"Application/Plugins/.svn/x": "svn",
	}))
	mtime := time.Date(2015, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "plugins/sitoa.js"), mtime, mtime))

	dest := filepath.Join(t.TempDir(), "Addons", "SItoA")
	require.NoError(t, CopyDirRecursive(src, dest))

	testutil.CheckDeepEqual(t, map[string]string{
		"plugins/sitoa.js":          "js",
		"plugins/helpers/Arnold.js": "helper",
		"shaders/bin/sitoa_shaders": "bin",
	}, testutil.ReadTree(t, dest))

	fi, err := os.Stat(filepath.Join(dest, "empty"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	fi, err = os.Stat(filepath.Join(dest, "plugins/sitoa.js"))
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime))

	assert.False(t, FilepathExists(filepath.Join(dest, "plugins/.svn")))
}

func TestCopyDirRecursiveFromVCSDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), ".svn")
	require.NoError(t, testutil.SetupFiles(src, map[string]string{
		"entries":         "12",
		"pristine/ab.svn": "base",
		"pristine/.git/x": "nested",
	}))

	dest := filepath.Join(t.TempDir(), "backup")
	require.NoError(t, CopyDirRecursive(src, dest))
	testutil.CheckDeepEqual(t, map[string]string{
		"entries":         "12",
		"pristine/ab.svn": "base",
	}, testutil.ReadTree(t, dest))
}

func TestExcludeMatcher(t *testing.T) {
	root := filepath.Join("/work", "sitoa")
	m, err := newExcludeMatcher(root+"/", vcsExcludePatterns())
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{root, false},
		{filepath.Join(root, ".svn"), true},
		{filepath.Join(root, ".git"), true},
		{filepath.Join(root, "plugins", ".svn"), true},
		{filepath.Join(root, "plugins", ".svn", "pristine"), true},
		{filepath.Join(root, "plugins"), false},
		{filepath.Join(root, "plugins", "x.svn"), false},
		{filepath.Join(root, ".github"), false},
	}
	for _, tt := range tests {
		got, err := m.excluded(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestCopyDirRecursiveErrors(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutil.SetupFiles(src, map[string]string{"a.txt": "a"}))

	dest := t.TempDir()
	err := CopyDirRecursive(src, dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))

	err = CopyDirRecursive(filepath.Join(src, "missing"), filepath.Join(dest, "new"))
	assert.Error(t, err)

	err = CopyDirRecursive(filepath.Join(src, "a.txt"), filepath.Join(dest, "new"))
	assert.Error(t, err)
}

func TestListFilesWithExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, testutil.SetupFiles(root, map[string]string{
		"sitoa.cpp":              "",
		"version.h":              "",
		"loader/Loader.cpp":      "",
		"loader/Loader.h":        "",
		"loader/.svn/text.cpp":   "",
		"renderer/Renderer.cpp":  "",
		"renderer/notes.txt":     "",
		".git/hooks/post.cpp":    "",
		"helpers/ArnoldTools.js": "",
		"empty/":                 "",
	}))

	tests := []struct {
		name       string
		extensions []string
		want       []string
	}{
		{
			name:       "sources",
			extensions: []string{".cpp"},
			want:       []string{"loader/Loader.cpp", "renderer/Renderer.cpp", "sitoa.cpp"},
		},
		{
			name:       "sources and headers without dots",
			extensions: []string{"cpp", "h"},
			want: []string{
				"loader/Loader.cpp", "loader/Loader.h", "renderer/Renderer.cpp",
				"sitoa.cpp", "version.h",
			},
		},
		{
			name:       "no match",
			extensions: []string{".py"},
			want:       nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListFilesWithExtensions(root, tt.extensions)
			testutil.CheckErrorAndDeepEqual(t, false, err, tt.want, got)
		})
	}

	// a trailing separator on the root does not change the relative paths
	got, err := ListFilesWithExtensions(root+string(filepath.Separator), []string{".js"})
	testutil.CheckErrorAndDeepEqual(t, false, err, []string{"helpers/ArnoldTools.js"}, got)

	_, err = ListFilesWithExtensions(filepath.Join(root, "missing"), []string{".cpp"})
	testutil.CheckError(t, true, err)
	_, err = ListFilesWithExtensions(filepath.Join(root, "sitoa.cpp"), []string{".cpp"})
	testutil.CheckError(t, true, err)
}

func TestClassifyExit(t *testing.T) {
	tests := []struct {
		os   platform.OS
		code int
		want ExitStatus
	}{
		{platform.Linux, 0, ExitOK},
		{platform.Linux, 1, ExitFailed},
		{platform.Linux, 128, ExitFailed},
		{platform.Linux, 139, ExitCrashed},
		{platform.Darwin, 134, ExitCrashed},
		{platform.Darwin, 2, ExitFailed},
		{platform.Windows, 0, ExitOK},
		{platform.Windows, -1, ExitCrashed},
		{platform.Windows, -1073741819, ExitCrashed},
		{platform.Windows, 139, ExitFailed},
		{platform.Windows, 1, ExitFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyExit(tt.os, tt.code), "%s %d", tt.os, tt.code)
	}
}

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	status, code, err := RunCommand(ctx, platform.Linux, "sh", "-c", "exit 0")
	require.NoError(t, err)
	assert.Equal(t, ExitOK, status)
	assert.Equal(t, 0, code)

	status, code, err = RunCommand(ctx, platform.Linux, "sh", "-c", "exit 3")
	require.NoError(t, err)
	assert.Equal(t, ExitFailed, status)
	assert.Equal(t, 3, code)

	status, code, err = RunCommand(ctx, platform.Linux, "sh", "-c", "kill -SEGV $$")
	require.NoError(t, err)
	assert.Equal(t, ExitCrashed, status)
	assert.Equal(t, 139, code)

	_, _, err = RunCommand(ctx, platform.Linux, "sitoa-buildtools-no-such-binary")
	assert.Error(t, err)
}
