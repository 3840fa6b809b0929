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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
)

// sysinfo is the report printed by the sysinfo command
type sysinfo struct {
	OS                  platform.OS   `yaml:"os"`
	HostArch            platform.Arch `yaml:"host_arch"`
	TargetArch          platform.Arch `yaml:"target_arch"`
	HostLabel           string        `yaml:"host_label"`
	TargetLabel         string        `yaml:"target_label"`
	LibraryExtension    string        `yaml:"library_extension"`
	ExecutableExtension string        `yaml:"executable_extension"`
}

func newSysinfo(info platform.Info) sysinfo {
	return sysinfo{
		OS:                  info.OS,
		HostArch:            info.HostArch,
		TargetArch:          info.TargetArch,
		HostLabel:           info.HostLabel(),
		TargetLabel:         info.TargetLabel(),
		LibraryExtension:    platform.LibraryExtension(info.OS),
		ExecutableExtension: platform.ExecutableExtension(info.OS),
	}
}

// retarget applies a --target-arch value, either an architecture name
// ("x86") or an os/arch specifier ("linux/386") for the host OS
func retarget(info platform.Info, target string) (platform.Info, error) {
	if target == "" {
		return info, nil
	}
	arch := platform.Arch(target)
	if strings.Contains(target, "/") {
		o, a, err := platform.ParseTarget(target)
		if err != nil {
			return info, err
		}
		if o != info.OS {
			return info, errors.Errorf("cannot target %s from a %s host", o, info.OS)
		}
		arch = a
	}
	return info.WithTargetArch(arch)
}

func newSysinfoCmd() *cobra.Command {
	var target string
	c := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print the host platform and the architecture labels used in build paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := resolvePlatform()
			if err != nil {
				return err
			}
			if info, err = retarget(info, target); err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(newSysinfo(info)); err != nil {
				return errors.Wrap(err, "writing platform report")
			}
			return enc.Close()
		},
	}
	c.Flags().StringVar(&target, "target-arch", "",
		"Target architecture (x86, x86_64, sparc_64) or os/arch platform such as linux/386")
	return c
}
