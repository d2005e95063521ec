// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ParsedPath is a file argument split into its parts.
// Local paths have an empty Scheme and keep the path as given in Path.
type ParsedPath struct {
	Scheme   string
	Host     string
	Path     string
	Filename string
}

// ParsePath recognises s3://bucket/key; anything else is a local path.
func ParsePath(p string) (*ParsedPath, error) {
	if !strings.HasPrefix(p, "s3://") {
		return &ParsedPath{Path: p, Filename: filepath.Base(p)}, nil
	}
	u, err := url.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", p, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("invalid path %q: expected s3://bucket/key", p)
	}
	return &ParsedPath{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     key,
		Filename: path.Base(key),
	}, nil
}

// GBToBytes converts a size in gigabytes (1024^3 bytes) to bytes.
func GBToBytes(gb float64) int64 {
	b := gb * 1024 * 1024 * 1024
	if b >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(b)
}

func TranslateFormat(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return "short"
	}
}

// SplitList flattens repeated, comma-separated flag values and drops empty items.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// LoadMetadataFile reads a YAML or JSON metadata document. A top-level
// "metadata" key is unwrapped, so a deposition exported with -o yaml can be reused.
func LoadMetadataFile(p string) (map[string]interface{}, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("yaml to json failed: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse after JSON conversion: %w", err)
	}
	if doc == nil {
		return nil, errors.New("metadata file is empty")
	}
	if inner, ok := doc["metadata"].(map[string]interface{}); ok {
		return inner, nil
	}
	return doc, nil
}
