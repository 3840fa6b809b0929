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


// Package main lists the pull requests merged since the last SItoA release
// as changelog markdown.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

const (
	org      = "Autodesk"
	repo     = "sitoa"
	pageSize = 100
)

var (
	token string
	since string
)

var rootCmd = &cobra.Command{
	Use:   "listpullreqs",
	Short: "Lists pull requests merged since the latest release in our changelog markdown format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printPullRequests(cmd.Context(), cmd.OutOrStdout())
	},
}

func main() {
	rootCmd.Flags().StringVar(&token, "token", os.Getenv("GITHUB_TOKEN"),
		"Personal GitHub token, for when anonymous requests hit the rate limit (defaults to $GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&since, "since", "",
		"List pull requests merged after this RFC3339 time instead of the latest release")

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newClient(ctx context.Context) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// cutoff returns the time merged pull requests are listed from
func cutoff(ctx context.Context, client *github.Client) (time.Time, error) {
	if since != "" {
		t, err := time.Parse(time.RFC3339, since)
		return t, errors.Wrap(err, "parsing --since")
	}
	releases, _, err := client.Repositories.ListReleases(ctx, org, repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "listing releases")
	}
	if len(releases) == 0 {
		logrus.Infof("No releases of %s/%s, listing every merged pull request", org, repo)
		return time.Time{}, nil
	}
	logrus.Infof("Latest release: %s", releases[0].GetName())
	return releases[0].GetPublishedAt().Time, nil
}

func printPullRequests(ctx context.Context, out io.Writer) error {
	client := newClient(ctx)
	from, err := cutoff(ctx, client)
	if err != nil {
		return err
	}

	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	seen := map[int]bool{}
	for {
		prs, resp, err := client.PullRequests.List(ctx, org, repo, opts)
		if err != nil {
			return errors.Wrapf(err, "listing pull requests, page %d", opts.Page)
		}
		for _, pr := range prs {
			if pr.MergedAt == nil || seen[pr.GetNumber()] || !pr.GetMergedAt().After(from) {
				continue
			}
			seen[pr.GetNumber()] = true
			fmt.Fprintf(out, "* %s [#%d](https://github.com/%s/%s/pull/%d)\n",
				pr.GetTitle(), pr.GetNumber(), org, repo, pr.GetNumber())
		}
		// Results are sorted by update time, so older pages only hold
		// pull requests merged before the cutoff.
		if resp.NextPage == 0 || (len(prs) > 0 && prs[len(prs)-1].GetUpdatedAt().Before(from)) {
			break
		}
		opts.Page = resp.NextPage
	}
	logrus.Infof("Found %d pull requests merged since %s", len(seen), from.Format(time.RFC3339))
	return nil
}
