// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".yadisk.ini"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	YadiskBaseURL      = "yadisk_base_url"
	YadiskAccessToken  = "yadisk_access_token"
	YadiskPollInterval = "yadisk_poll_interval"
	YadiskTimeout      = "yadisk_timeout"
)
