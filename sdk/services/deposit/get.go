// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

func (s *DepositService) Get(ctx context.Context, id int64) (*Deposition, error) {
	url := s.http.BuildURL(resource, strconv.FormatInt(id, 10), nil)
	body, _, err := s.http.Do(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposition %d: %w", id, err)
	}

	var dep Deposition
	if err := json.Unmarshal(body, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse deposition %d: %w", id, err)
	}
	return &dep, nil
}
