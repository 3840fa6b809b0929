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
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

// ExitStatus is the coarse outcome of an external process
type ExitStatus string

const (
	// ExitOK means the process returned 0
	ExitOK ExitStatus = "OK"
	// ExitFailed means the process returned a regular error code
	ExitFailed ExitStatus = "FAILED"
	// ExitCrashed means the process was killed or crashed
	ExitCrashed ExitStatus = "CRASHED"
)

// posixSignalBase is added to the signal number by POSIX shells for
// processes terminated by a signal
const posixSignalBase = 128

// ClassifyExit translates a process return code into an ExitStatus.
// On Windows crashes surface as negative codes (NTSTATUS values read as
// int32); on POSIX systems codes above 128 mean termination by a signal.
func ClassifyExit(o platform.OS, code int) ExitStatus {
	if code == 0 {
		return ExitOK
	}
	if o == platform.Windows {
		if code < 0 {
			return ExitCrashed
		}
		return ExitFailed
	}
	if code > posixSignalBase {
		return ExitCrashed
	}
	return ExitFailed
}

// exitCode returns the return code of a finished process the way a shell
// on o would report it
func exitCode(o platform.OS, ee *exec.ExitError) int {
	code := ee.ExitCode()
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return posixSignalBase + int(ws.Signal())
	}
	if o == platform.Windows {
		return int(int32(uint32(code))) //nolint:gosec // NTSTATUS codes are signed
	}
	return code
}

// RunCommand runs name with args, logging its output at debug level, and
// classifies how it ended. The raw return code is returned alongside.
// A command that cannot be started is reported as an error.
func RunCommand(ctx context.Context, o platform.OS, name string, args ...string) (ExitStatus, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	defer out.Close()
	cmd.Stdout = out
	cmd.Stderr = out

	logrus.Debugf("Running %s %v", name, args)
	err := cmd.Run()
	if err == nil {
		return ExitOK, 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := exitCode(o, ee)
		status := ClassifyExit(o, code)
		logrus.Debugf("%s exited with %d (%s)", name, code, status)
		return status, code, nil
	}
	return "", -1, errors.Wrapf(err, "running %s", name)
}
