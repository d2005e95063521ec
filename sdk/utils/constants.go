// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	SettingsFileName = ".zenodo.ini"

	// INI keys. Author and affiliation live in [DEFAULT], the rest in the
	// section of the environment they belong to.
	AuthorKey      = "author"
	AffiliationKey = "affiliation"
	TokenKey       = "token"
	BaseURLKey     = "base_url"

	// Viper-only keys, bound to flags and env.
	MaxFileSizeKey    = "max_file_size"
	TotalSizeLimitKey = "total_size_limit"
	TimeoutKey        = "timeout"

	AwsAccessKeyID     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"
	AwsRegion          = "aws_region"
	AwsEndpointURL     = "aws_endpoint_url"

	DefaultMaxFileSizeGB    = 50.0
	DefaultTotalSizeLimitGB = 50.0
)

// EnvVars maps viper keys to the environment variables that may set them.
// The token variable depends on the environment and is bound separately.
var EnvVars = map[string]string{
	AuthorKey:          "ZENODO_AUTHOR",
	AffiliationKey:     "ZENODO_AFFILIATION",
	BaseURLKey:         "ZENODO_BASE_URL",
	AwsAccessKeyID:     "AWS_ACCESS_KEY_ID",
	AwsSecretAccessKey: "AWS_SECRET_ACCESS_KEY",
	AwsSessionToken:    "AWS_SESSION_TOKEN",
	AwsRegion:          "AWS_REGION",
	AwsEndpointURL:     "AWS_ENDPOINT_URL",
}

// TokenEnvVars holds the access token variable for each environment.
var TokenEnvVars = map[string]string{
	"production": "ZENODO_TOKEN",
	"sandbox":    "ZENODO_SANDBOX_TOKEN",
}
