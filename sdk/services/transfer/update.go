// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// Update adds files and/or metadata to an existing draft. A published
// deposition is refused right after it is fetched, before any change is attempted.
// The metadata patch is merged shallowly: every top-level key it carries
// replaces the stored value as a whole (creators included).
func (s *TransferService) Update(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	patch := buildPatch(req.Metadata, req.ExtraMetadata)
	if len(req.Files) == 0 && len(patch) == 0 {
		return nil, ErrNothingToUpdate
	}

	var pre *PreflightResult
	if len(req.Files) > 0 {
		var err error
		if pre, err = s.Preflight(ctx, req.Files, req.Limits); err != nil {
			return nil, err
		}
	}

	dep, err := s.deposits.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if dep.Submitted {
		return nil, fmt.Errorf("deposition %d: %w", dep.ID, deposit.ErrAlreadyPublished)
	}
	log := s.log.With(zap.Int64("deposition", dep.ID))

	result := &UpdateResult{Deposition: dep}
	if pre != nil {
		result.Skipped = pre.Skipped
		if len(pre.Files) == 0 {
			log.Warn("no valid files to upload")
		} else {
			if dep.BucketURL() == "" {
				return result, fmt.Errorf("deposition %d: %w", dep.ID, deposit.ErrMissingBucket)
			}
			log.Info("uploading files", zap.Int("count", len(pre.Files)), zap.String("size", utils.HumanBytes(pre.TotalBytes)))
			result.Uploaded, err = s.uploadFiles(ctx, dep.BucketURL(), pre, req.Progress, req.Verbose)
			if err != nil {
				return result, fmt.Errorf("deposition %d: %w", dep.ID, err)
			}
		}
	}

	if len(patch) > 0 {
		current, err := dep.MetadataMap()
		if err != nil {
			return result, err
		}
		log.Info("updating metadata")
		if _, err := s.deposits.SetMetadata(ctx, dep.ID, utils.ShallowMerge(current, patch)); err != nil {
			return result, err
		}
		result.MetadataUpdated = true
	}

	dep, err = s.deposits.Get(ctx, dep.ID)
	if err != nil {
		return result, err
	}
	result.Deposition = dep
	return result, nil
}
