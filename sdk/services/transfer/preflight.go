// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// Preflight checks every path before anything is sent to Zenodo.
//   - a missing path aborts the whole operation
//   - a file larger than the per-file limit is skipped with a warning and not counted
//   - the kept files together must fit in the total limit
//
// An empty Files list in the result is not an error; callers treat it as a no-op.
func (s *TransferService) Preflight(ctx context.Context, paths []string, limits Limits) (*PreflightResult, error) {
	maxFile := utils.GBToBytes(limits.MaxFileSizeGB)
	maxTotal := utils.GBToBytes(limits.TotalSizeLimitGB)

	res := &PreflightResult{}
	for _, p := range paths {
		ref, err := s.stat(ctx, p)
		if err != nil {
			return nil, err
		}
		if ref.Size > maxFile {
			s.log.Warn("file exceeds size limit, skipping",
				zap.String("file", ref.Name),
				zap.String("size", utils.HumanBytes(ref.Size)),
				zap.String("limit", utils.HumanBytes(maxFile)))
			res.Skipped = append(res.Skipped, ref)
			continue
		}
		res.Files = append(res.Files, ref)
		res.TotalBytes += ref.Size
	}

	if res.TotalBytes > maxTotal {
		return nil, fmt.Errorf("%w: %s > %s", ErrTotalSizeExceeded,
			utils.HumanBytes(res.TotalBytes), utils.HumanBytes(maxTotal))
	}
	s.log.Debug("pre-flight done",
		zap.Int("files", len(res.Files)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int64("bytes", res.TotalBytes))
	return res, nil
}

func (s *TransferService) stat(ctx context.Context, p string) (FileRef, error) {
	pp, err := utils.ParsePath(p)
	if err != nil {
		return FileRef{}, err
	}

	if pp.Scheme == "s3" {
		src, err := s.objectSource(ctx)
		if err != nil {
			return FileRef{}, err
		}
		size, err := src.Stat(ctx, pp.Host, pp.Path)
		if err != nil {
			if errors.Is(err, config.ErrObjectNotFound) {
				return FileRef{}, fmt.Errorf("%w: %s", ErrFileNotFound, p)
			}
			return FileRef{}, err
		}
		return FileRef{Path: p, Name: pp.Filename, Size: size, Bucket: pp.Host, Key: pp.Path}, nil
	}

	st, err := os.Stat(pp.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileRef{}, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return FileRef{}, fmt.Errorf("cannot access %s: %w", p, err)
	}
	if !st.Mode().IsRegular() {
		return FileRef{}, fmt.Errorf("%w: %s", ErrNotAFile, p)
	}
	return FileRef{Path: p, Name: st.Name(), Size: st.Size()}, nil
}
