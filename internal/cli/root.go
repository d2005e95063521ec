// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

func userAgent() string {
	return "zenodo-cli/" + Version
}

// NewRootCommand wires every subcommand. Output goes to cmd.OutOrStdout and
// cmd.ErrOrStderr so tests can capture it.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "zenodo",
		Short: "Upload files and metadata to Zenodo from the command line",
		Long: `zenodo creates draft depositions on Zenodo, uploads files into them,
attaches bibliographic metadata and, on request, publishes them.

Defaults (author, affiliation, tokens) are read from .zenodo.ini in the
current directory or, failing that, in the home directory. Flags always win.

Examples:
  zenodo configure --author "Doe, John" --token $TOKEN
  zenodo upload data.csv readme.txt --title "My data" --description "..."
  zenodo upload -f model.bin --title "Weights" --description "..." --publish
  zenodo list --sandbox
  zenodo update 123456 -f extra.csv --title "My data (v2)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("token", "", "Zenodo personal access token")
	pf.Bool("sandbox", false, "Use the Zenodo sandbox environment")
	pf.String("base-url", "", "Override the API base URL")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.Duration("timeout", 0, "Timeout for each request (0 means none)")
	_ = pf.MarkHidden("base-url")

	root.AddCommand(
		newUploadCommand(),
		newUpdateCommand(),
		newListCommand(),
		newConfigureCommand(),
		newVersionCommand(),
	)
	return root
}

func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
