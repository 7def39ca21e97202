// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import "maps"

// MergeMaps merges map2 over map1 and returns a new map. Nested maps are merged
// recursively; any other value in map2 replaces the one in map1, including nil,
// which the Disk API reads as "remove this property".
func MergeMaps(map1, map2 map[string]any) map[string]any {
	result := make(map[string]any, len(map1)+len(map2))
	maps.Copy(result, map1)

	for k, v2 := range map2 {
		m1, ok1 := result[k].(map[string]any)
		m2, ok2 := v2.(map[string]any)
		if ok1 && ok2 {
			result[k] = MergeMaps(m1, m2)
			continue
		}
		result[k] = v2
	}
	return result
}
