// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import "errors"

var (
	ErrNoFiles           = errors.New("no files given")
	ErrFileNotFound      = errors.New("file not found")
	ErrNotAFile          = errors.New("not a regular file")
	ErrTotalSizeExceeded = errors.New("total file size exceeds the limit")
	ErrNothingToUpdate   = errors.New("nothing to update: give files or metadata")
)
