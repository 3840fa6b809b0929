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


package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const sconsPrefix = "scons: "

// SConsFormatter writes entries the way SCons reports build progress:
// "scons: message" for regular output and "scons: *** message" for
// warnings and errors, followed by any fields as sorted key=value pairs.
type SConsFormatter struct {
	ShowTimestamp bool
}

// Format renders a single log entry
func (f *SConsFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var out strings.Builder

	if f.ShowTimestamp {
		out.WriteString(entry.Time.Format("15:04:05"))
		out.WriteString(" ")
	}
	out.WriteString(sconsPrefix)
	out.WriteString(levelMarker(entry.Level))
	out.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&out, " %s=%v", k, entry.Data[k])
		}
	}

	out.WriteString("\n")
	return []byte(out.String()), nil
}

func levelMarker(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "*** "
	case logrus.WarnLevel:
		return "warning: "
	case logrus.DebugLevel, logrus.TraceLevel:
		return "debug: "
	default:
		return ""
	}
}
