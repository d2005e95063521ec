// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"io"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// Limits are in gigabytes (1 GB = 1024^3 bytes).
type Limits struct {
	MaxFileSizeGB    float64
	TotalSizeLimitGB float64
}

func DefaultLimits() Limits {
	return Limits{
		MaxFileSizeGB:    utils.DefaultMaxFileSizeGB,
		TotalSizeLimitGB: utils.DefaultTotalSizeLimitGB,
	}
}

// FileRef is a file that passed the existence check.
// Bucket and Key are set for s3:// sources only.
type FileRef struct {
	Path   string `json:"path"             yaml:"path"`
	Name   string `json:"name"             yaml:"name"`
	Size   int64  `json:"size"             yaml:"size"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key    string `json:"key,omitempty"    yaml:"key,omitempty"`
}

func (f FileRef) Remote() bool {
	return f.Bucket != ""
}

type PreflightResult struct {
	Files      []FileRef
	Skipped    []FileRef
	TotalBytes int64
}

// -------- Upload --------

type UploadRequest struct {
	Files []string // local paths or s3://bucket/key
	// Metadata set from flags; it wins over ExtraMetadata (e.g. a metadata file).
	Metadata      deposit.Metadata
	ExtraMetadata map[string]interface{}
	Limits        Limits
	Publish       bool

	// Progress receives progress lines; nil disables them.
	Progress io.Writer
	Verbose  bool
}

type UploadResult struct {
	// Deposition is nil when no file survived the pre-flight check.
	Deposition *deposit.Deposition
	Uploaded   []FileRef
	Skipped    []FileRef
	Published  bool
}

// -------- Update --------

type UpdateRequest struct {
	ID    int64
	Files []string
	// Only the fields that are set are merged into the stored document.
	Metadata      deposit.Metadata
	ExtraMetadata map[string]interface{}
	Limits        Limits

	Progress io.Writer
	Verbose  bool
}

type UpdateResult struct {
	Deposition      *deposit.Deposition
	Uploaded        []FileRef
	Skipped         []FileRef
	MetadataUpdated bool
}
