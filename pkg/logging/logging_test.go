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
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	}()

	tests := []struct {
		format string
		want   logrus.Formatter
	}{
		{FormatText, &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}},
		{FormatColor, &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}},
		{FormatJSON, &logrus.JSONFormatter{}},
		{FormatSCons, &SConsFormatter{ShowTimestamp: true}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			require.NoError(t, Configure("debug", tt.format, true))
			assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
			assert.Equal(t, tt.want, logrus.StandardLogger().Formatter)
		})
	}
}

func TestConfigureErrors(t *testing.T) {
	logrus.SetLevel(logrus.InfoLevel)

	assert.Error(t, Configure("loud", FormatText, false))
	assert.Error(t, Configure("warn", "compact", false))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSConsFormatter(t *testing.T) {
	when := time.Date(2017, 6, 1, 14, 3, 9, 0, time.UTC)
	tests := []struct {
		name  string
		f     SConsFormatter
		entry *logrus.Entry
		want  string
	}{
		{
			name:  "info",
			entry: &logrus.Entry{Level: logrus.InfoLevel, Message: "done building targets."},
			want:  "scons: done building targets.\n",
		},
		{
			name:  "error",
			entry: &logrus.Entry{Level: logrus.ErrorLevel, Message: "[dist] Error 1"},
			want:  "scons: *** [dist] Error 1\n",
		},
		{
			name: "warning with fields",
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "ignoring unknown build variable",
				Data:    logrus.Fields{"key": "PATCH", "file": "custom.py"},
			},
			want: "scons: warning: ignoring unknown build variable file=custom.py key=PATCH\n",
		},
		{
			name:  "debug with timestamp",
			f:     SConsFormatter{ShowTimestamp: true},
			entry: &logrus.Entry{Level: logrus.DebugLevel, Message: "skipping .svn", Time: when},
			want:  "14:03:09 scons: debug: skipping .svn\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.f.Format(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}
