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
	"github.com/spf13/cobra"

	"github.com/Gosayram/sitoa-buildtools/pkg/config"
	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

const (
	templateFormatYAML   = "yaml"
	templateFormatLegacy = "py"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Check or generate build configuration files",
	}
	c.AddCommand(newConfigValidateCmd(), newConfigTemplateCmd())
	return c
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Load a configuration and check its values (default " + constants.DefaultConfigFile + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := constants.DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			info, err := resolvePlatform()
			if err != nil {
				return err
			}
			opts, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.ApplyEnvDefaults()
			target, err := opts.Validate(info)
			if err != nil {
				return errors.Wrap(err, path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s target=%s\n", path, opts.String(), target.TargetLabel())
			return nil
		},
	}
}

func newConfigTemplateCmd() *cobra.Command {
	var osName, format string
	c := &cobra.Command{
		Use:   "template",
		Short: "Print a sample configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var o platform.OS
			if osName == "" {
				info, err := resolvePlatform()
				if err != nil {
					return err
				}
				o = info.OS
			} else {
				var err error
				if o, err = platform.ResolveOS(osName); err != nil {
					return err
				}
			}
			opts, err := config.Template(o)
			if err != nil {
				return err
			}
			switch format {
			case templateFormatYAML:
				return opts.WriteYAML(cmd.OutOrStdout())
			case templateFormatLegacy:
				return opts.WriteLegacy(cmd.OutOrStdout())
			default:
				return errors.Errorf("unknown template format %q, expected %s or %s",
					format, templateFormatYAML, templateFormatLegacy)
			}
		},
	}
	c.Flags().StringVar(&osName, "os", "", "Operating system of the template (linux, windows); defaults to the host")
	c.Flags().StringVar(&format, "format", templateFormatYAML, "Output format (yaml, py)")
	return c
}
