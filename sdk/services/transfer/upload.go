// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// Upload runs the whole creation flow, strictly in this order:
//   - pre-flight of the files (no request is made if it fails)
//   - creation of an empty draft deposition
//   - upload of each file into the deposition bucket
//   - metadata write
//   - publish, only if requested
//
// Any failure after creation leaves the deposition as the server holds it;
// nothing is rolled back. The returned result names the deposition in that case.
func (s *TransferService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}
	doc, err := BuildMetadataDocument(req.Metadata, req.ExtraMetadata)
	if err != nil {
		return nil, err
	}

	pre, err := s.Preflight(ctx, req.Files, req.Limits)
	if err != nil {
		return nil, err
	}
	result := &UploadResult{Skipped: pre.Skipped}
	if len(pre.Files) == 0 {
		s.log.Warn("no valid files to upload")
		return result, nil
	}

	dep, err := s.deposits.Create(ctx)
	if err != nil {
		return result, err
	}
	result.Deposition = dep
	log := s.log.With(zap.Int64("deposition", dep.ID))

	log.Info("uploading files", zap.Int("count", len(pre.Files)), zap.String("size", utils.HumanBytes(pre.TotalBytes)))
	result.Uploaded, err = s.uploadFiles(ctx, dep.BucketURL(), pre, req.Progress, req.Verbose)
	if err != nil {
		return result, fmt.Errorf("deposition %d: %w", dep.ID, err)
	}

	log.Info("adding metadata")
	dep, err = s.deposits.SetMetadata(ctx, dep.ID, doc)
	if err != nil {
		return result, err
	}
	result.Deposition = dep

	if !req.Publish {
		return result, nil
	}

	log.Info("publishing record")
	dep, err = s.deposits.Publish(ctx, dep.ID)
	if err != nil {
		return result, err
	}
	result.Deposition = dep
	result.Published = true
	return result, nil
}

// uploadFiles sends the files one at a time and stops at the first failure.
func (s *TransferService) uploadFiles(ctx context.Context, bucketURL string, pre *PreflightResult, w io.Writer, verbose bool) ([]FileRef, error) {
	progress := utils.NewProgress(w, pre.TotalBytes, verbose)
	defer progress.Done()

	var uploaded []FileRef
	for i, f := range pre.Files {
		s.log.Debug("uploading", zap.String("file", f.Name), zap.String("source", f.Path))

		r, size, err := s.open(ctx, f)
		if err != nil {
			return uploaded, err
		}
		obj, err := s.deposits.UploadFile(ctx, bucketURL, f.Name, r, size, progress.Hook(f.Name, i, len(pre.Files)))
		_ = r.Close()
		if err != nil {
			return uploaded, err
		}

		s.log.Debug("file uploaded", zap.String("file", obj.Key), zap.Int64("size", obj.Size), zap.String("checksum", obj.Checksum))
		uploaded = append(uploaded, f)
	}
	return uploaded, nil
}

func (s *TransferService) open(ctx context.Context, f FileRef) (io.ReadCloser, int64, error) {
	if f.Remote() {
		src, err := s.objectSource(ctx)
		if err != nil {
			return nil, 0, err
		}
		return src.Open(ctx, f.Bucket, f.Key)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, f.Path)
		}
		return nil, 0, fmt.Errorf("failed to open local file: %w", err)
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("stat error: %w", err)
	}
	return file, st.Size(), nil
}
