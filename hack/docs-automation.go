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


// Package main generates the CLI reference of the buildtools command from its
// cobra command tree.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Gosayram/sitoa-buildtools/cmd/buildtools/cmd"
	"github.com/Gosayram/sitoa-buildtools/internal/version"
)

// CLICommand models a CLI command with flags and subcommands.
type CLICommand struct {
	Name        string       `json:"name"`
	Usage       string       `json:"usage"`
	Description string       `json:"description"`
	Flags       []CLIFlag    `json:"flags"`
	Subcommands []CLICommand `json:"subcommands"`
}

// CLIFlag models a CLI flag.
type CLIFlag struct {
	Name         string `json:"name"`
	Shorthand    string `json:"shorthand"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue"`
	Description  string `json:"description"`
}

// reference is the document rendered to markdown and JSON
type reference struct {
	Version   string     `json:"version"`
	Generated time.Time  `json:"generated"`
	Root      CLICommand `json:"root"`
}

func collectFlags(fs *pflag.FlagSet) []CLIFlag {
	var flags []CLIFlag
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flags = append(flags, CLIFlag{
			Name:         f.Name,
			Shorthand:    f.Shorthand,
			Type:         f.Value.Type(),
			DefaultValue: f.DefValue,
			Description:  f.Usage,
		})
	})
	return flags
}

// collectCommands converts c and its visible subcommands
func collectCommands(c *cobra.Command) CLICommand {
	out := CLICommand{
		Name:        c.CommandPath(),
		Usage:       c.UseLine(),
		Description: c.Short,
		Flags:       collectFlags(c.LocalFlags()),
	}
	for _, sub := range c.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		out.Subcommands = append(out.Subcommands, collectCommands(sub))
	}
	return out
}

func anchor(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

func writeCommand(buf *bytes.Buffer, c CLICommand, depth int) {
	fmt.Fprintf(buf, "%s `%s`\n\n", strings.Repeat("#", depth), c.Name)
	fmt.Fprintf(buf, "%s\n\n", c.Description)
	fmt.Fprintf(buf, "```bash\n%s\n```\n\n", c.Usage)

	if len(c.Flags) > 0 {
		buf.WriteString("| Flag | Description | Default |\n")
		buf.WriteString("|------|-------------|---------|\n")
		for _, f := range c.Flags {
			def := f.DefaultValue
			if def == "" || def == "[]" {
				def = "none"
			}
			name := "`--" + f.Name + "`"
			if f.Shorthand != "" {
				name += ", `-" + f.Shorthand + "`"
			}
			fmt.Fprintf(buf, "| %s | %s | %s |\n", name, f.Description, def)
		}
		buf.WriteString("\n")
	}

	next := depth + 1
	if next > 4 {
		next = 4
	}
	for _, sub := range c.Subcommands {
		writeCommand(buf, sub, next)
	}
}

func renderMarkdown(ref reference) []byte {
	var buf bytes.Buffer
	buf.WriteString("# SItoA Build Tools CLI Reference\n\n")
	fmt.Fprintf(&buf, "Version: %s\n", ref.Version)
	fmt.Fprintf(&buf, "Generated: %s\n\n", ref.Generated.Format("2006-01-02 15:04:05"))

	buf.WriteString("## Commands\n\n")
	for _, sub := range ref.Root.Subcommands {
		fmt.Fprintf(&buf, "- [%s](#%s): %s\n", sub.Name, anchor(sub.Name), sub.Description)
	}
	buf.WriteString("\n")

	writeCommand(&buf, ref.Root, 2)
	return buf.Bytes()
}

func generate(outputDir string, ref reference) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	md := filepath.Join(outputDir, "cli-reference.md")
	if err := os.WriteFile(md, renderMarkdown(ref), 0o644); err != nil { //nolint:gosec // docs are world readable
		return errors.Wrap(err, "writing CLI reference")
	}
	logrus.Infof("CLI reference written to %s", md)

	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding CLI reference")
	}
	js := filepath.Join(outputDir, "cli-reference.json")
	if err := os.WriteFile(js, data, 0o644); err != nil { //nolint:gosec // docs are world readable
		return errors.Wrap(err, "writing CLI JSON reference")
	}
	logrus.Infof("CLI JSON reference written to %s", js)
	return nil
}

func newReference(now time.Time) reference {
	return reference{
		Version:   version.String(),
		Generated: now,
		Root:      collectCommands(cmd.NewRootCmd()),
	}
}

func main() {
	outputDir := flag.String("out", "docs/generated", "Directory the reference is written to")
	flag.Parse()

	if err := generate(*outputDir, newReference(time.Now())); err != nil {
		logrus.Fatalf("Failed to generate CLI documentation: %v", err)
	}
}
