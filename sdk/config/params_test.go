// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

func TestParamsEncode(t *testing.T) {
	limit := 20
	var noOffset *int

	qs, err := config.Params{
		"path":      "/dir",
		"limit":     &limit,
		"offset":    noOffset,
		"sort":      "",
		"fields":    []string{"name", "size"},
		"media":     []string{},
		"overwrite": true,
		"nothing":   nil,
	}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "fields=name%2Csize&limit=20&overwrite=true&path=%2Fdir", qs)
}

func TestParamsKeepsFalse(t *testing.T) {
	qs, err := config.Params{"permanently": false, "overwrite": false, "path": "/a"}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "overwrite=false&path=%2Fa&permanently=false", qs)
}

func TestParamsEmpty(t *testing.T) {
	qs, err := config.Params(nil).Encode()
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestParamsUnsupportedValue(t *testing.T) {
	_, err := config.Params{"bad": struct{ A int }{1}}.Encode()
	assert.Error(t, err)
}
