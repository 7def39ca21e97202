// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Params are the query parameters of a request. Absent values (nil, nil pointers,
// empty strings and empty slices) are left out of the query string; slices are sent
// as one comma separated value, the way the Disk API reads "fields".
type Params map[string]any

// Values converts p into url.Values, dropping absent entries.
func (p Params) Values() (url.Values, error) {
	values := url.Values{}
	for k, v := range p {
		s, ok, err := paramString(v)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", k, err)
		}
		if ok {
			values.Set(k, s)
		}
	}
	return values, nil
}

// Encode returns the sorted query string of p.
func (p Params) Encode() (string, error) {
	values, err := p.Values()
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

func paramString(v any) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false, nil
		}
		return paramString(rv.Elem().Interface())
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return "", false, nil
		}
		items, err := cast.ToStringSliceE(v)
		if err != nil {
			return "", false, err
		}
		return strings.Join(items, ","), true, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false, err
	}
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}
