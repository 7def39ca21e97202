// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
)

// MD5Hex returns the hex md5 of everything r yields, the digest the Disk API
// reports in the "md5" field.
func MD5Hex(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash error: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

