// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMaps(t *testing.T) {
	base := map[string]interface{}{
		"title":   "base",
		"license": "cc-by-4.0",
		"grants":  map[string]interface{}{"id": "1", "funder": "EC"},
		"creators": []interface{}{
			map[string]interface{}{"name": "Doe, John", "orcid": "0000"},
			map[string]interface{}{"name": "Roe, Jane"},
		},
		"keywords": []interface{}{"a"},
	}
	over := map[string]interface{}{
		"title":  "over",
		"grants": map[string]interface{}{"id": "2"},
		"creators": []interface{}{
			map[string]interface{}{"name": "Doe, John", "affiliation": "FBK"},
			map[string]interface{}{"name": "Poe, Ed"},
		},
		"keywords": []interface{}{"b"},
	}

	got := MergeMaps(base, over, MetadataMergeConfig)
	assert.Equal(t, map[string]interface{}{
		"title":   "over",
		"license": "cc-by-4.0",
		"grants":  map[string]interface{}{"id": "2", "funder": "EC"},
		"creators": []interface{}{
			map[string]interface{}{"name": "Doe, John", "orcid": "0000", "affiliation": "FBK"},
			map[string]interface{}{"name": "Roe, Jane"},
			map[string]interface{}{"name": "Poe, Ed"},
		},
		"keywords": []interface{}{"b"},
	}, got)

	// inputs untouched
	assert.Equal(t, "base", base["title"])
	assert.Len(t, base["creators"], 2)
}

func TestMergeMapsNil(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"a": 1}, MergeMaps(nil, map[string]interface{}{"a": 1}, nil))
	assert.Empty(t, MergeMaps(nil, nil, nil))
}

func TestShallowMerge(t *testing.T) {
	base := map[string]interface{}{
		"title":    "old",
		"creators": []interface{}{map[string]interface{}{"name": "A", "orcid": "1"}},
	}
	patch := map[string]interface{}{
		"creators": []interface{}{map[string]interface{}{"name": "A"}},
	}
	got := ShallowMerge(base, patch)
	assert.Equal(t, "old", got["title"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "A"}}, got["creators"])
}
