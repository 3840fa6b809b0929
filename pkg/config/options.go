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

// Package config holds the build variables a developer customises per
// machine: compiler, SDK locations, install destination and build flavour.
package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
	"github.com/Gosayram/sitoa-buildtools/pkg/platform"
	"github.com/Gosayram/sitoa-buildtools/pkg/util"
)

// ErrInvalidOption is returned when a build variable has an unsupported value
var ErrInvalidOption = errors.New("invalid build option")

// WarnLevel is the compiler warning strictness
type WarnLevel string

// The supported warning levels.
const (
	WarnOnly WarnLevel = "warn-only"
	Strict   WarnLevel = "strict"
)

func (w *WarnLevel) String() string {
	return string(*w)
}

// Set validates and sets the warning level from string value
func (w *WarnLevel) Set(v string) error {
	switch WarnLevel(v) {
	case WarnOnly, Strict:
		*w = WarnLevel(v)
		return nil
	default:
		return errors.Wrapf(ErrInvalidOption, `WARN_LEVEL must be either "warn-only" or "strict", got %q`, v)
	}
}

// Type returns the string identifier for warning level type
func (w *WarnLevel) Type() string {
	return "warnlevel"
}

// Mode is the build flavour
type Mode string

// The supported build modes.
const (
	ModeOpt     Mode = "opt"
	ModeDebug   Mode = "debug"
	ModeDev     Mode = "dev"
	ModeProfile Mode = "profile"
)

var modes = []Mode{ModeOpt, ModeDebug, ModeDev, ModeProfile}

func (m *Mode) String() string {
	return string(*m)
}

// Set validates and sets the build mode from string value
func (m *Mode) Set(v string) error {
	for _, mode := range modes {
		if Mode(v) == mode {
			*m = mode
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidOption, "MODE must be one of %v, got %q", modes, v)
}

// Type returns the string identifier for mode type
func (m *Mode) Type() string {
	return "mode"
}

// Options are the build variables read from a custom configuration file
type Options struct {
	// SHCXX is the C++ compiler used for shared objects
	SHCXX string `yaml:"SHCXX,omitempty"`
	// XSISDKRoot is the Softimage SDK root
	XSISDKRoot string `yaml:"XSISDK_ROOT,omitempty"`
	// ArnoldHome is the Arnold SDK root
	ArnoldHome string `yaml:"ARNOLD_HOME,omitempty"`
	// TargetWorkgroupPath is where the built add-on is installed
	TargetWorkgroupPath string        `yaml:"TARGET_WORKGROUP_PATH,omitempty"`
	WarnLevel           WarnLevel     `yaml:"WARN_LEVEL,omitempty"`
	Mode                Mode          `yaml:"MODE,omitempty"`
	ShowCmds            bool          `yaml:"SHOW_CMDS"`
	TargetArch          platform.Arch `yaml:"TARGET_ARCH,omitempty"`

	// Windows toolchain
	MSVCVersion string `yaml:"MSVC_VERSION,omitempty"`
	VSHome      string `yaml:"VS_HOME,omitempty"`
	WindowsKit  string `yaml:"WINDOWS_KIT,omitempty"`
}

// Defaults returns the values used for variables a configuration omits
func Defaults() Options {
	return Options{
		WarnLevel:           Strict,
		Mode:                ModeOpt,
		TargetWorkgroupPath: "./Addons/SItoA",
	}
}

// ApplyEnvDefaults fills the SDK locations the configuration leaves empty
// from the XSISDK_ROOT and ARNOLD_HOME environment variables
func (o *Options) ApplyEnvDefaults() {
	if o.XSISDKRoot == "" {
		o.XSISDKRoot = util.DefaultPath(constants.XSISDKRootEnv, "")
	}
	if o.ArnoldHome == "" {
		o.ArnoldHome = util.DefaultPath(constants.ArnoldHomeEnv, "")
	}
}

// Validate checks the enumerated variables and returns info retargeted to
// TARGET_ARCH when the configuration sets one
func (o *Options) Validate(info platform.Info) (platform.Info, error) {
	var w WarnLevel
	if err := w.Set(string(o.WarnLevel)); err != nil {
		return info, err
	}
	var m Mode
	if err := m.Set(string(o.Mode)); err != nil {
		return info, err
	}
	if o.TargetArch == "" {
		return info, nil
	}
	retargeted, err := info.WithTargetArch(o.TargetArch)
	if err != nil {
		return info, errors.Wrapf(ErrInvalidOption, "TARGET_ARCH: %v", err)
	}
	return retargeted, nil
}

// Template returns the sample configuration for o
func Template(o platform.OS) (Options, error) {
	switch o {
	case platform.Linux:
		return Options{
			SHCXX:               "/usr/bin/gcc-4.2.4/bin/gcc-4.2.4",
			XSISDKRoot:          "/usr/Softimage/Softimage_2015/XSISDK",
			ArnoldHome:          "/usr/SolidAngle/Arnold-5.3.1.0/linux",
			TargetWorkgroupPath: "./Softimage_2015/Addons/SItoA",
			WarnLevel:           WarnOnly,
			Mode:                ModeOpt,
			ShowCmds:            true,
		}, nil
	case platform.Windows:
		return Options{
			TargetArch:          platform.X86_64,
			MSVCVersion:         "11.0",
			VSHome:              "C:/Program Files (x86)/Microsoft Visual Studio 11.0/VC",
			WindowsKit:          "C:/Program Files (x86)/Windows Kits/8.0",
			XSISDKRoot:          "C:/Program Files/Autodesk/Softimage 2015/XSISDK",
			ArnoldHome:          "C:/SolidAngle/Arnold-5.3.0.1/win64",
			TargetWorkgroupPath: "./Softimage_2015/Addons/SItoA",
			WarnLevel:           Strict,
			Mode:                ModeOpt,
			ShowCmds:            true,
		}, nil
	default:
		return Options{}, errors.Wrapf(ErrInvalidOption, "no configuration template for %s", o)
	}
}

func (o *Options) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s warn=%s", o.Mode, o.WarnLevel)
	if o.TargetArch != "" {
		fmt.Fprintf(&b, " arch=%s", o.TargetArch)
	}
	fmt.Fprintf(&b, " xsisdk=%s arnold=%s dest=%s", o.XSISDKRoot, o.ArnoldHome, o.TargetWorkgroupPath)
	return b.String()
}
