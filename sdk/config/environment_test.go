// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	assert.Equal(t, Production, ResolveEnvironment(false))
	assert.Equal(t, Sandbox, ResolveEnvironment(true))
	assert.Equal(t, ProductionURL, Production.BaseURL())
	assert.Equal(t, SandboxURL, Sandbox.BaseURL())
}
