// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Config is what the SDK services are built from. It carries no viper or INI state.
type Config struct {
	Core CoreConfig
	S3   S3Config
}

type CoreConfig struct {
	// BaseURL is the API root, e.g. https://zenodo.org/api
	BaseURL     string
	AccessToken string
	UserAgent   string
	// Timeout applies to each request; zero means no timeout.
	Timeout time.Duration
}

// S3Config is only used when a file to upload is given as s3://bucket/key.
// Empty keys fall back to the default AWS credential chain.
type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}
