// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Publish performs POST {base}/deposit/depositions/{id}/actions/publish.
// There is no way back: a published record cannot be unpublished.
func (s *DepositService) Publish(ctx context.Context, id int64) (*Deposition, error) {
	url := s.http.BuildURL(resource, strconv.FormatInt(id, 10), nil) + "/actions/publish"
	body, _, err := s.http.Do(ctx, "POST", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to publish deposition %d: %w", id, err)
	}

	var dep Deposition
	if err := json.Unmarshal(body, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse publish response: %w", err)
	}
	s.log.Info("deposition published", zap.Int64("deposition", dep.ID), zap.String("doi", dep.DOI))
	return &dep, nil
}
