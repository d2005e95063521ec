// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError is one entry of the "errors" list Zenodo attaches to validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Errors     []FieldError
	Body       []byte
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString("zenodo responded with: ")
	sb.WriteString(e.Status)
	if e.Message != "" {
		sb.WriteString(" - ")
		sb.WriteString(e.Message)
	}
	for _, fe := range e.Errors {
		if fe.Field != "" {
			fmt.Fprintf(&sb, "; %s: %s", fe.Field, fe.Message)
		} else {
			fmt.Fprintf(&sb, "; %s", fe.Message)
		}
	}
	if e.Message == "" && len(e.Errors) == 0 && len(e.Body) > 0 && len(e.Body) <= 512 {
		sb.WriteString(" - ")
		sb.WriteString(strings.TrimSpace(string(e.Body)))
	}
	return sb.String()
}

func newAPIError(statusCode int, status string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Status: status, Body: body}
	var m struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if json.Unmarshal(body, &m) == nil {
		apiErr.Message = m.Message
		apiErr.Errors = m.Errors
	}
	return apiErr
}
