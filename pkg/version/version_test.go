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

package version

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gosayram/sitoa-buildtools/testutil"
)

const sitoaSource = `#include <version.h>

#include <xsi_utils.h>

#define SITOA_MAJOR_VERSION_NUM    5
#define SITOA_MINOR_VERSION_NUM    3
#define SITOA_FIX_VERSION          "1"

unsigned int GetMajorVersion()
{
   return SITOA_MAJOR_VERSION_NUM;
}
`

const arnoldHeader = `#pragma once

// the version of the renderer
   #define AI_VERSION_ARCH_NUM    5
	#define AI_VERSION_MAJOR_NUM   3
#define AI_VERSION_MINOR_NUM   1
#define AI_VERSION_FIX         "0"
#define AI_VERSION             AI_VERSION_ARCH_NUM.AI_VERSION_MAJOR_NUM
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, testutil.SetupFiles(dir, files))
	return dir
}

func TestSItoAVersion(t *testing.T) {
	dir := writeFiles(t, map[string]string{"version.cpp": sitoaSource})
	path := filepath.Join(dir, "version.cpp")

	tests := []struct {
		components int
		want       string
	}{
		{1, "5"},
		{2, "5.3"},
		{3, "5.3.1"},
	}
	for _, tt := range tests {
		v, err := SItoAVersion(path, tt.components)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.String())
		assert.Equal(t, StatusOK, v.Status)
		assert.Empty(t, v.Missing)
	}
}

func TestExtractLongLines(t *testing.T) {
	long := "// " + strings.Repeat("x", 70000) + "\n"
	dir := writeFiles(t, map[string]string{
		"version.cpp":           long + sitoaSource,
		"include/xsi_version.h": long + "#define XSISDK_VERSION 13.0.114.0\n",
	})

	v, err := SItoAVersion(filepath.Join(dir, "version.cpp"), 3)
	require.NoError(t, err)
	assert.Equal(t, "5.3.1", v.String())
	assert.Equal(t, StatusOK, v.Status)

	v, err = SoftimageVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, "13.0.114.0", v.String())
}

func TestSItoAVersionWideFix(t *testing.T) {
	dir := writeFiles(t, map[string]string{"version.cpp": `
#define SITOA_MAJOR_VERSION_NUM    5
#define SITOA_MINOR_VERSION_NUM    0
#define SITOA_FIX_VERSION          L"0-alpha"
`})
	v, err := SItoAVersion(filepath.Join(dir, "version.cpp"), 3)
	require.NoError(t, err)
	assert.Equal(t, "5.0.0-alpha", v.String())
}

func TestArnoldVersion(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ai_version.h": arnoldHeader})
	path := filepath.Join(dir, "ai_version.h")

	v, err := ArnoldVersion(path, 4)
	require.NoError(t, err)
	assert.Equal(t, "5.3.1.0", v.String())
	testutil.CheckDeepEqual(t, []string{"5", "3", "1", "0"}, v.Components)

	v, err = ArnoldVersion(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "5.3", v.String())
}

func TestExtractMissingTokens(t *testing.T) {
	dir := writeFiles(t, map[string]string{"version.cpp": "#define SITOA_MAJOR_VERSION_NUM 5\n#define\n"})
	path := filepath.Join(dir, "version.cpp")

	v, err := Extract(path, SItoA, 3)
	require.NoError(t, err)
	assert.Equal(t, "5..", v.String())
	assert.Equal(t, StatusTokenMissing, v.Status)
	assert.Equal(t, []string{"SITOA_MINOR_VERSION_NUM", "SITOA_FIX_VERSION"}, v.Missing)

	// tokens past the requested components do not count as missing
	v, err = Extract(path, SItoA, 1)
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
	assert.Equal(t, StatusOK, v.Status)
}

func TestExtractErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"version.cpp": sitoaSource})

	_, err := Extract(filepath.Join(dir, "missing.cpp"), SItoA, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))

	for _, n := range []int{0, -1, 4} {
		_, err = Extract(filepath.Join(dir, "version.cpp"), SItoA, n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed), "components=%d", n)
	}
	_, err = Extract(filepath.Join(dir, "version.cpp"), Arnold, 5)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestSoftimageVersion(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"include/xsi_version.h": "// header\n#  define XSISDK_VERSION 13.0.1.0\n#define XSISDK_VERSION 1\n",
	})
	v, err := SoftimageVersion(root)
	require.NoError(t, err)
	assert.Equal(t, "13.0.1.0", v.String())
	assert.Equal(t, StatusOK, v.Status)

	empty := writeFiles(t, map[string]string{"include/xsi_version.h": "// nothing here\n"})
	v, err = SoftimageVersion(empty)
	require.NoError(t, err)
	assert.Equal(t, StatusTokenMissing, v.Status)
	assert.Equal(t, []string{"XSISDK_VERSION"}, v.Missing)

	_, err = SoftimageVersion(t.TempDir())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "token missing", StatusTokenMissing.String())
	assert.Equal(t, "unknown", Status(42).String())
}
