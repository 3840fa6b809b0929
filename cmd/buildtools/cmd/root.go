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


// Package cmd provides the command-line interface of the SItoA build tools.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/internal/version"
	"github.com/Gosayram/sitoa-buildtools/pkg/logging"
	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

type logOptions struct {
	level     string
	format    string
	timestamp bool
}

// NewRootCmd assembles the buildtools command and its subcommands
func NewRootCmd() *cobra.Command {
	logOpts := &logOptions{}

	root := &cobra.Command{
		Use:           "buildtools",
		Short:         "Helpers used by the SItoA build scripts",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logging.Configure(logOpts.level, logOpts.format, logOpts.timestamp)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("SItoA build tools\n%s\n", version.Info()))

	root.PersistentFlags().StringVarP(&logOpts.level, "verbosity", "v", logging.DefaultLevel,
		"Log level (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&logOpts.format, "log-format", logging.FormatText,
		fmt.Sprintf("Log format %v", logging.Formats))
	root.PersistentFlags().BoolVar(&logOpts.timestamp, "log-timestamp",
		logging.DefaultLogTimestamp, "Timestamp in log output")

	root.AddCommand(
		newSysinfoCmd(),
		newVersionCmd(),
		newFindCmd(),
		newFilesCmd(),
		newCopyCmd(),
		newRemoveCmd(),
		newExitStatusCmd(),
		newRunCmd(),
		newConfigCmd(),
		newRevisionCmd(),
	)
	return root
}

// Execute runs the root command and logs the error it fails with
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		logrus.Error(err)
	}
	return err
}

// resolvePlatform detects the host, failing on operating systems the build
// does not support
func resolvePlatform() (platform.Info, error) {
	info, err := platform.Resolve()
	if err != nil {
		return platform.Info{}, err
	}
	logrus.Debugf("Host platform: %s", info)
	return info, nil
}
