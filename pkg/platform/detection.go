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

package platform

import (
	"os"
	"strconv"
	"strings"

	"github.com/containerd/platforms"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/sitoa-buildtools/pkg/constants"
)

// Probe holds the raw facts host detection is derived from
type Probe struct {
	// Platform is the runtime platform name, e.g. "Linux" or "windows"
	Platform string
	// Machine is the hardware name as reported by uname(2)
	Machine string
	// PointerBits is the pointer width of the running process
	PointerBits int
	// LookupEnv reads the environment; nil means an empty environment
	LookupEnv func(key string) (string, bool)
}

func (p Probe) env(key string) string {
	if p.LookupEnv == nil {
		return ""
	}
	v, _ := p.LookupEnv(key)
	return v
}

// HostProbe collects the facts of the running process
func HostProbe() Probe {
	spec := platforms.DefaultSpec()
	m, err := machine()
	if err != nil {
		logrus.Debugf("Falling back to %s for the machine name: %v", spec.Architecture, err)
		m = goarchMachine(spec.Architecture)
	}
	return Probe{
		Platform:    spec.OS,
		Machine:     m,
		PointerBits: strconv.IntSize,
		LookupEnv:   os.LookupEnv,
	}
}

// ResolveOS maps a runtime platform name to a supported OS
func ResolveOS(name string) (OS, error) {
	n := OS(strings.ToLower(strings.TrimSpace(name)))
	for _, o := range validOSes {
		if n == o {
			return o, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedOS, "%q", name)
}

// ResolveHostArch derives the host architecture from the probe using the
// heuristic specific to each OS
func ResolveHostArch(o OS, p Probe) Arch {
	switch o {
	case Windows:
		if p.env(constants.ProcessorArchitectureEnv) == constants.ProcessorAMD64 ||
			p.env(constants.ProcessorArchiteW6432Env) == constants.ProcessorAMD64 {
			return X86_64
		}
		return X86
	case Darwin:
		if p.PointerBits == 64 {
			return X86_64
		}
		return X86
	case Linux:
		switch p.Machine {
		case "sparc64":
			return Sparc64
		case "x86_64":
			return X86_64
		}
		return X86
	}
	return X86
}

// ResolveProbe builds the platform Info described by p
func ResolveProbe(p Probe) (Info, error) {
	o, err := ResolveOS(p.Platform)
	if err != nil {
		return Info{}, err
	}
	info := NewInfo(o, ResolveHostArch(o, p))
	logrus.Debugf("Resolved platform %s", info)
	return info, nil
}

// Resolve builds the platform Info of the running process. It is meant to be
// called once at startup and the result passed to the helpers that need it.
func Resolve() (Info, error) {
	return ResolveProbe(HostProbe())
}

var goarchToArch = map[string]Arch{
	"386":     X86,
	"amd64":   X86_64,
	"sparc64": Sparc64,
}

// ParseTarget parses an os/arch platform specifier such as "linux/amd64" or
// "windows/386" into a supported OS and architecture
func ParseTarget(specifier string) (OS, Arch, error) {
	p, err := platforms.Parse(specifier)
	if err != nil {
		return "", "", errors.Wrapf(err, "parsing platform %q", specifier)
	}
	o, err := ResolveOS(p.OS)
	if err != nil {
		return "", "", err
	}
	arch, ok := goarchToArch[p.Architecture]
	if !ok {
		return "", "", errors.Wrapf(ErrInvalidTargetArch, "%q", p.Architecture)
	}
	return o, arch, nil
}

func goarchMachine(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	default:
		return goarch
	}
}
