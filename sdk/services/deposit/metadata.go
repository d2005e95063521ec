// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SetMetadata replaces the whole metadata document of a draft.
func (s *DepositService) SetMetadata(ctx context.Context, id int64, doc map[string]interface{}) (*Deposition, error) {
	payload, err := json.Marshal(map[string]interface{}{"metadata": doc})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	url := s.http.BuildURL(resource, strconv.FormatInt(id, 10), nil)
	body, _, err := s.http.Do(ctx, "PUT", url, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to set metadata on deposition %d: %w", id, err)
	}

	var dep Deposition
	if err := json.Unmarshal(body, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse metadata response: %w", err)
	}
	s.log.Debug("metadata written", zap.Int64("deposition", id))
	return &dep, nil
}

// ValidateDocument checks the fields Zenodo needs before a draft can be saved:
// title, description and at least one named creator.
func ValidateDocument(doc map[string]interface{}) error {
	for _, key := range []string{"title", "description"} {
		v, _ := doc[key].(string)
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}
	if !hasNamedCreator(doc["creators"]) {
		return fmt.Errorf("%w: author", ErrMissingField)
	}
	return nil
}

func hasNamedCreator(v interface{}) bool {
	switch creators := v.(type) {
	case []Creator:
		for _, c := range creators {
			if strings.TrimSpace(c.Name) != "" {
				return true
			}
		}
	case []interface{}:
		for _, it := range creators {
			if m, ok := it.(map[string]interface{}); ok {
				if name, _ := m["name"].(string); strings.TrimSpace(name) != "" {
					return true
				}
			}
		}
	}
	return false
}
