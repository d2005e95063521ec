// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/transfer"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

func newUploadCommand() *cobra.Command {
	var (
		mf      metadataFlags
		publish bool
	)
	cmd := &cobra.Command{
		Use:   "upload [files...]",
		Short: "Create a new deposition and upload files into it",
		Long: `Create a new draft deposition, upload the given files, set its metadata and,
with --publish, publish it. Files may be given as arguments or with -f.

Files larger than --max-file-size are skipped with a warning. Nothing is
sent to Zenodo if a file is missing or the total exceeds --total-size-limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, map[string]string{
				"author":      utils.AuthorKey,
				"affiliation": utils.AffiliationKey,
			})
			if err != nil {
				return err
			}
			files := append(append([]string{}, args...), mf.files...)
			if len(files) == 0 {
				return transfer.ErrNoFiles
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

			res, err := svc.Upload(cmd.Context(), transfer.UploadRequest{
				Files:         files,
				Metadata:      mf.metadata(a.settings.Author, a.settings.Affiliation),
				ExtraMetadata: extra,
				Limits:        limitsFrom(a.settings),
				Publish:       publish,
				Progress:      a.progressWriter(),
				Verbose:       a.verbose,
			})
			if err != nil {
				if res != nil && res.Deposition != nil {
					return fmt.Errorf("%w (deposition %d is left as a draft: %s)", err, res.Deposition.ID, res.Deposition.DraftURL())
				}
				return err
			}
			printUploadResult(a.out, res)
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the record after the upload (default: keep it as a draft)")
	return cmd
}

func printUploadResult(w io.Writer, res *transfer.UploadResult) {
	printSkipped(w, fileNames(res.Skipped))
	if res.Deposition == nil {
		printWarning(w, "No valid files to upload.")
		return
	}
	dep := res.Deposition
	if res.Published {
		printSuccess(w, "Published successfully!")
		printField(w, "DOI", dep.DOI)
		printField(w, "View on Zenodo", dep.RecordURL())
		return
	}
	printSuccess(w, "Upload complete. Record has been saved as a draft.")
	printField(w, "Deposition", fmt.Sprintf("%d", dep.ID))
	printField(w, "Review and publish manually at", dep.DraftURL())
}
