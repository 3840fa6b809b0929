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


package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
	"github.com/Gosayram/sitoa-buildtools/pkg/envpath"
	"github.com/Gosayram/sitoa-buildtools/pkg/util"
)

func newExitStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exit-status <code>",
		Short: "Classify a process return code as OK, FAILED or CRASHED",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "parsing return code %q", args[0])
			}
			info, err := resolvePlatform()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), util.ClassifyExit(info.OS, code))
			return nil
		},
	}
}

// processEnvironment seeds a build environment with the search paths of the
// running process
func processEnvironment(keys ...string) *envpath.Environment {
	vars := map[string]string{}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return envpath.New(vars)
}

func newRunCmd() *cobra.Command {
	var libDirs, binDirs []string
	c := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command with extra library and program search paths and report how it ended",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			info, err := resolvePlatform()
			if err != nil {
				return err
			}
			libVar := envpath.LibraryPathVar(info.OS)
			env := processEnvironment(libVar, constants.PathEnv)
			for _, d := range libDirs {
				env.AddToLibraryPath(info.OS, d)
			}
			for _, d := range binDirs {
				env.AddToProgramPath(d)
			}

			if len(libDirs) > 0 {
				if err := env.SetLibraryPath(info.OS); err != nil {
					return err
				}
				defer func() {
					if rerr := env.ResetLibraryPath(info.OS); rerr != nil && err == nil {
						err = rerr
					}
				}()
			}
			if len(binDirs) > 0 {
				if err := env.SetProgramPath(); err != nil {
					return err
				}
				defer func() {
					if rerr := env.ResetProgramPath(); rerr != nil && err == nil {
						err = rerr
					}
				}()
			}

			status, code, err := util.RunCommand(cmd.Context(), info.OS, args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if status != util.ExitOK {
				logrus.Debugf("%s returned %d", args[0], code)
				return errors.Errorf("%s %s with return code %d", args[0], status, code)
			}
			return nil
		},
	}
	c.Flags().StringArrayVar(&libDirs, "lib-path", nil, "Directory prepended to the library search path (repeatable)")
	c.Flags().StringArrayVar(&binDirs, "path", nil, "Directory prepended to PATH (repeatable)")
	return c
}
