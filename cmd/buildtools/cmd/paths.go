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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/pkg/util"
)

func newFindCmd() *cobra.Command {
	var escaped bool
	c := &cobra.Command{
		Use:   "find <name>",
		Short: "List every match for name in the directories of PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := resolvePlatform()
			if err != nil {
				return err
			}
			matches, err := util.FindInPath(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return errors.Errorf("%s not found in PATH", args[0])
			}
			for _, m := range matches {
				if escaped {
					m = util.EscapedPath(info.OS, m)
				}
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&escaped, "escaped", false, "Escape backslashes so paths can be embedded in C strings")
	return c
}

func newFilesCmd() *cobra.Command {
	var exts []string
	c := &cobra.Command{
		Use:   "files <root>",
		Short: "List files under root by extension, skipping .svn and .git",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := util.ListFilesWithExtensions(args[0], exts)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	c.Flags().StringSliceVar(&exts, "ext", nil, "File extension to list, e.g. .cpp (repeatable)")
	return c
}

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src> <dest>",
		Short: "Copy a directory tree, skipping version-control metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := util.CopyDirRecursive(args[0], args[1]); err != nil {
				return err
			}
			logrus.Infof("Copied %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file>...",
		Short: "Remove files, ignoring the ones that do not exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()
			for _, p := range args {
				if err := util.SafeRemove(fsys, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
