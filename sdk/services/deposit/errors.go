// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import "errors"

var (
	ErrMissingToken     = errors.New("missing access token")
	ErrMissingField     = errors.New("missing required field")
	ErrAlreadyPublished = errors.New("deposition is already published")
	ErrMissingBucket    = errors.New("deposition has no bucket link")
)
