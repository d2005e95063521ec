// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

type Environment string

const (
	Production Environment = "production"
	Sandbox    Environment = "sandbox"

	ProductionURL = "https://zenodo.org/api"
	SandboxURL    = "https://sandbox.zenodo.org/api"
)

// ResolveEnvironment picks the sandbox when asked to, production otherwise.
func ResolveEnvironment(sandbox bool) Environment {
	if sandbox {
		return Sandbox
	}
	return Production
}

func (e Environment) BaseURL() string {
	if e == Sandbox {
		return SandboxURL
	}
	return ProductionURL
}

func (e Environment) String() string {
	return string(e)
}
