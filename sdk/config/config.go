// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// DefaultBaseURL is the versioned endpoint of the Disk REST API.
const DefaultBaseURL = "https://cloud-api.yandex.net/v1/"

// Config is everything the SDK needs; loading it from env/INI is done in utils.
type Config struct {
	Disk DiskConfig
	S3   S3Config
}

type DiskConfig struct {
	BaseURL     string
	AccessToken string
	// PollInterval is the pause between two status checks of an async operation.
	PollInterval time.Duration
	// Timeout bounds a single HTTP exchange, body included; zero means no limit.
	Timeout time.Duration
}

type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
	Bucket      string
}
