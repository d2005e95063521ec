// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/transfer"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// metadataFlags are shared by upload and update.
type metadataFlags struct {
	files        []string
	title        string
	description  string
	author       string
	affiliation  string
	orcid        string
	keywords     []string
	version      string
	uploadType   string
	metadataFile string
}

// register adds the flags. The size limits are read back through the settings
// (flag > env > file), not from this struct.
func (f *metadataFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.files, "file", "f", nil, "File to upload, local path or s3://bucket/key (repeatable)")
	fl.StringVar(&f.title, "title", "", "Title of the record")
	fl.StringVar(&f.description, "description", "", "Description of the record")
	fl.StringVar(&f.author, "author", "", "Author name, e.g. \"Doe, John\"")
	fl.StringVar(&f.affiliation, "affiliation", "", "Affiliation of the author")
	fl.StringVar(&f.orcid, "orcid", "", "ORCID of the author")
	fl.StringArrayVar(&f.keywords, "keywords", nil, "Keywords, comma separated or repeated")
	fl.StringVar(&f.version, "version", "", "Version of the uploaded content")
	fl.StringVar(&f.uploadType, "upload-type", "", "Upload type: dataset, software, publication, poster, ... (default \"dataset\" on upload)")
	fl.StringVar(&f.metadataFile, "metadata-file", "", "YAML or JSON file with additional metadata; flags take precedence")
	fl.Float64("max-file-size", utils.DefaultMaxFileSizeGB, "Skip files larger than this size in GB")
	fl.Float64("total-size-limit", utils.DefaultTotalSizeLimitGB, "Maximum total size of the upload in GB")
}

func (f *metadataFlags) metadata(author, affiliation string) deposit.Metadata {
	md := deposit.NewMetadata(f.title, author, affiliation, f.description)
	if len(md.Creators) > 0 {
		md.Creators[0].ORCID = f.orcid
	}
	md.UploadType = f.uploadType
	md.Version = f.version
	md.Keywords = utils.SplitList(f.keywords)
	return md
}

func (f *metadataFlags) extra() (map[string]interface{}, error) {
	if f.metadataFile == "" {
		return nil, nil
	}
	return utils.LoadMetadataFile(f.metadataFile)
}

func limitsFrom(s utils.Settings) transfer.Limits {
	return transfer.Limits{
		MaxFileSizeGB:    s.MaxFileSizeGB,
		TotalSizeLimitGB: s.TotalSizeLimitGB,
	}
}

func fileNames(refs []transfer.FileRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}
