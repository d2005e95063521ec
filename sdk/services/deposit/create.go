// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Create makes a new, empty draft deposition.
func (s *DepositService) Create(ctx context.Context) (*Deposition, error) {
	url := s.http.BuildURL(resource, "", nil)
	body, _, err := s.http.Do(ctx, "POST", url, []byte("{}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create deposition: %w", err)
	}

	var dep Deposition
	if err := json.Unmarshal(body, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse create response: %w", err)
	}
	if dep.BucketURL() == "" {
		return nil, fmt.Errorf("deposition %d: %w", dep.ID, ErrMissingBucket)
	}

	s.log.Info("deposition created", zap.Int64("deposition", dep.ID))
	return &dep, nil
}
