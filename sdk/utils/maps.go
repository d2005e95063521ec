// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

// MergeConfig defines how specific fields (arrays of maps) should be merged.
// Key: the field name (e.g., "creators"), Value: the key to match inside each map (e.g., "name").
type MergeConfig map[string]string

// MetadataMergeConfig matches creators by name, so a creator given on the
// command line keeps the extra fields (orcid, gnd...) of the same creator in a metadata file.
var MetadataMergeConfig = MergeConfig{"creators": "name"}

// MergeMaps merges two maps (map1 and map2) giving precedence to map2.
// If both maps contain the same key and the value is also a map, it merges recursively.
// If the value is a slice of maps and a MergeConfig is provided, it merges by key.
// Neither input is modified.
func MergeMaps(map1, map2 map[string]interface{}, cfg MergeConfig) map[string]interface{} {
	result := make(map[string]interface{}, len(map1)+len(map2))

	for k, v := range map1 {
		result[k] = v
	}

	for k, v2 := range map2 {
		v1, exists := result[k]

		switch {
		case exists && isMap(v1) && isMap(v2):
			result[k] = MergeMaps(v1.(map[string]interface{}), v2.(map[string]interface{}), cfg)

		case exists && isSlice(v1) && isSlice(v2) && cfg != nil:
			arr1 := v1.([]interface{})
			arr2 := v2.([]interface{})
			if mergeKey, ok := cfg[k]; ok && looksLikeArrayOfMaps(arr1) && looksLikeArrayOfMaps(arr2) {
				result[k] = mergeArrayOfMapsByKey(arr1, arr2, mergeKey, cfg)
			} else {
				result[k] = v2
			}

		default:
			result[k] = v2
		}
	}

	return result
}

// ShallowMerge overwrites top-level keys of base with those of patch.
// Nested values are replaced as a whole, never merged.
func ShallowMerge(base, patch map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range patch {
		result[k] = v
	}
	return result
}

// mergeArrayOfMapsByKey merges two arrays of maps using a unique key (e.g., "name").
// Order is preserved: items of arr1 first, then new items of arr2. Items without a string key are kept as they are.
func mergeArrayOfMapsByKey(arr1, arr2 []interface{}, key string, cfg MergeConfig) []interface{} {
	result := make([]interface{}, 0, len(arr1)+len(arr2))
	index := make(map[string]int)

	for _, item := range arr1 {
		m := item.(map[string]interface{})
		if id, ok := m[key].(string); ok {
			index[id] = len(result)
		}
		result = append(result, m)
	}

	for _, item := range arr2 {
		m := item.(map[string]interface{})
		id, ok := m[key].(string)
		if !ok {
			result = append(result, m)
			continue
		}
		if pos, found := index[id]; found {
			result[pos] = MergeMaps(result[pos].(map[string]interface{}), m, cfg)
			continue
		}
		index[id] = len(result)
		result = append(result, m)
	}

	return result
}

// looksLikeArrayOfMaps returns true if all elements are maps
func looksLikeArrayOfMaps(arr []interface{}) bool {
	for _, item := range arr {
		if _, ok := item.(map[string]interface{}); !ok {
			return false
		}
	}
	return true
}

func isMap(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

func isSlice(v interface{}) bool {
	_, ok := v.([]interface{})
	return ok
}
