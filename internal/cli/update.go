// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/transfer"
)

func newUpdateCommand() *cobra.Command {
	var mf metadataFlags
	cmd := &cobra.Command{
		Use:   "update <deposition-id> [files...]",
		Short: "Add files or metadata to an existing draft deposition",
		Long: `Upload more files into an existing draft and/or change its metadata.
Only the fields given on the command line change; each one replaces the stored
value as a whole. Published depositions cannot be updated.

The author and affiliation from the settings file are not applied here:
pass --author to replace the creators.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid deposition id %q", args[0])
			}
			if mf.author == "" && (mf.affiliation != "" || mf.orcid != "") {
				return errors.New("--affiliation and --orcid require --author on update")
			}

			a, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			conf, err := a.sdkConfig()
			if err != nil {
				return err
			}
			extra, err := mf.extra()
			if err != nil {
				return err
			}
			svc, err := transfer.NewTransferService(cmd.Context(), conf, a.log)
			if err != nil {
				return err
			}

			res, err := svc.Update(cmd.Context(), transfer.UpdateRequest{
				ID:            id,
				Files:         append(append([]string{}, args[1:]...), mf.files...),
				Metadata:      mf.metadata(mf.author, mf.affiliation),
				ExtraMetadata: extra,
				Limits:        limitsFrom(a.settings),
				Progress:      a.progressWriter(),
				Verbose:       a.verbose,
			})
			if err != nil {
				return err
			}
			printUpdateResult(a.out, res)
			return nil
		},
	}
	mf.register(cmd)
	return cmd
}

func printUpdateResult(w io.Writer, res *transfer.UpdateResult) {
	printSkipped(w, fileNames(res.Skipped))
	dep := res.Deposition
	switch {
	case len(res.Uploaded) > 0 && res.MetadataUpdated:
		printSuccess(w, "Uploaded %d file(s) and updated the metadata of deposition %d.", len(res.Uploaded), dep.ID)
	case len(res.Uploaded) > 0:
		printSuccess(w, "Uploaded %d file(s) to deposition %d.", len(res.Uploaded), dep.ID)
	case res.MetadataUpdated:
		printSuccess(w, "Updated the metadata of deposition %d.", dep.ID)
	default:
		printWarning(w, "Nothing was changed in deposition %d.", dep.ID)
	}
	printField(w, "Review and publish manually at", dep.DraftURL())
}
