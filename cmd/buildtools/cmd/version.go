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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/pkg/version"
)

const (
	defaultSItoAComponents  = 3
	defaultArnoldComponents = 4
)

func printVersion(cmd *cobra.Command, v *version.Version) {
	if v.Status != version.StatusOK {
		logrus.Warnf("%s version is incomplete, missing %v", v.Scheme, v.Missing)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
}

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Read version numbers from C/C++ headers",
	}

	for _, s := range []struct {
		scheme     version.Scheme
		components int
		what       string
	}{
		{version.SItoA, defaultSItoAComponents, "the plugin version from version.cpp"},
		{version.Arnold, defaultArnoldComponents, "the Arnold version from ai_version.h"},
	} {
		var components int
		scheme := s.scheme
		sub := &cobra.Command{
			Use:   scheme.Name + " <header>",
			Short: "Print " + s.what,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := version.Extract(args[0], scheme, components)
				if err != nil {
					return err
				}
				printVersion(cmd, v)
				return nil
			},
		}
		sub.Flags().IntVar(&components, "components", s.components, "Number of version components to print")
		c.AddCommand(sub)
	}

	c.AddCommand(&cobra.Command{
		Use:   "softimage <xsisdk-root>",
		Short: "Print XSISDK_VERSION from the Softimage SDK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.SoftimageVersion(args[0])
			if err != nil {
				return err
			}
			printVersion(cmd, v)
			return nil
		},
	})
	return c
}
