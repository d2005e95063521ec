// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

// UploadFile streams size bytes from r to {bucketURL}/{name} with one PUT.
// The name is used verbatim; an object with the same key is overwritten by the server.
func (s *DepositService) UploadFile(
	ctx context.Context,
	bucketURL, name string,
	r io.Reader,
	size int64,
	hook *config.ProgressHook,
) (*BucketObject, error) {
	if bucketURL == "" {
		return nil, ErrMissingBucket
	}
	if name == "" {
		return nil, errors.New("empty file name")
	}

	target := strings.TrimSuffix(bucketURL, "/") + "/" + url.PathEscape(name)
	s.log.Debug("uploading file", zap.String("file", name), zap.Int64("size", size), zap.String("url", target))

	body, _, err := s.http.Upload(ctx, "PUT", target, r, size, hook)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	obj := &BucketObject{Key: name, Size: size}
	if len(body) > 0 {
		if err := json.Unmarshal(body, obj); err != nil {
			return nil, fmt.Errorf("failed to parse upload response for %s: %w", name, err)
		}
	}
	return obj, nil
}
