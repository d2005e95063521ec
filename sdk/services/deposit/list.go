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

// List returns the depositions of the authenticated user, as the server sends them.
func (s *DepositService) List(ctx context.Context, req ListRequest) ([]Deposition, error) {
	params := map[string]string{
		"q":      req.Query,
		"status": req.Status,
		"sort":   req.Sort,
	}
	if req.Page > 0 {
		params["page"] = strconv.Itoa(req.Page)
	}
	if req.Size > 0 {
		params["size"] = strconv.Itoa(req.Size)
	}

	url := s.http.BuildURL(resource, "", params)
	body, _, err := s.http.Do(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list depositions: %w", err)
	}

	deps := []Deposition{}
	if err := json.Unmarshal(body, &deps); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	return deps, nil
}
