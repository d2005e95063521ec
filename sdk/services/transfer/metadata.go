// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// BuildMetadataDocument combines extra (e.g. a metadata file) with md, md winning,
// defaults the upload type and validates the required fields.
func BuildMetadataDocument(md deposit.Metadata, extra map[string]interface{}) (map[string]interface{}, error) {
	doc := utils.MergeMaps(extra, md.Fields(), utils.MetadataMergeConfig)
	if t, _ := doc["upload_type"].(string); t == "" {
		doc["upload_type"] = deposit.DefaultUploadType
	}
	if err := deposit.ValidateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// buildPatch is the partial document an update merges into the stored one.
func buildPatch(md deposit.Metadata, extra map[string]interface{}) map[string]interface{} {
	return utils.MergeMaps(extra, md.Fields(), utils.MetadataMergeConfig)
}
