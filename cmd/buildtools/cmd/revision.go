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

	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/pkg/vcs"
)

func newRevisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revision [dir]",
		Short: "Print the HEAD commit and origin URL of the working copy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			rev, err := vcs.LatestRevision(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision: %s\nurl: %s\n", rev.ID, rev.URL)
			return nil
		},
	}
}
