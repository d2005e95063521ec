// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
)

func newListCommand() *cobra.Command {
	var (
		output string
		req    deposit.ListRequest
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your depositions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			conf, err := a.sdkConfig()
			if err != nil {
				return err
			}
			svc, err := deposit.NewDepositService(cmd.Context(), conf, a.log)
			if err != nil {
				return err
			}
			deps, err := svc.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printDepositions(a.out, deps, output)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&output, "output", "o", "short", "Output format: short, json, yaml")
	fl.StringVarP(&req.Query, "query", "q", "", "Search query")
	fl.StringVar(&req.Status, "status", "", "Filter by status: draft, published")
	fl.StringVar(&req.Sort, "sort", "", "Sort order: bestmatch, mostrecent (prefix with - to reverse)")
	fl.IntVar(&req.Page, "page", 0, "Page number")
	fl.IntVar(&req.Size, "size", 0, "Results per page")
	return cmd
}
