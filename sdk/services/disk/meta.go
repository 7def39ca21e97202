// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
	"sigs.k8s.io/yaml"
)

// SetMeta attaches custom properties to a resource. A nil value removes the property.
func (s *DiskService) SetMeta(ctx context.Context, req SetMetaRequest) (*Resource, error) {
	if req.Path == "" {
		return nil, errors.New("path is required")
	}
	if len(req.CustomProperties) == 0 {
		return nil, errors.New("custom properties are required")
	}

	body, err := json.Marshal(map[string]any{"custom_properties": req.CustomProperties})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	s.http.Logger().WithFields(logrus.Fields{
		"path":       req.Path,
		"properties": len(req.CustomProperties),
	}).Info("set meta")

	resp, err := s.http.Do(ctx, &config.Request{
		Method:      http.MethodPatch,
		Path:        "disk/resources",
		Params:      config.Params{"path": req.Path, "fields": req.Fields},
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("set meta on %s failed: %w", req.Path, err)
	}
	var r Resource
	if err := resp.JSON(&r); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &r, nil
}

// SetMetaFromFile reads the custom properties from a YAML (or JSON) document.
func (s *DiskService) SetMetaFromFile(ctx context.Context, path, filePath string) (*Resource, error) {
	return s.SetMetaFromFiles(ctx, path, filePath)
}

// SetMetaFromFiles merges the properties of several documents, later files winning,
// and sets the result in a single call.
func (s *DiskService) SetMetaFromFiles(ctx context.Context, path string, filePaths ...string) (*Resource, error) {
	if len(filePaths) == 0 {
		return nil, errors.New("at least one properties file is required")
	}
	props := map[string]any{}
	for _, filePath := range filePaths {
		doc, err := readProperties(filePath)
		if err != nil {
			return nil, err
		}
		props = utils.MergeMaps(props, doc)
	}
	return s.SetMeta(ctx, SetMetaRequest{Path: path, CustomProperties: props})
}

func readProperties(filePath string) (map[string]any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file: %w", err)
	}
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("yaml to json failed: %w", err)
	}
	var props map[string]any
	if err := json.Unmarshal(jsonBytes, &props); err != nil {
		return nil, fmt.Errorf("failed to parse after JSON conversion: %w", err)
	}
	// a document that only wraps the map is accepted as well
	if inner, ok := props["custom_properties"].(map[string]any); ok && len(props) == 1 {
		props = inner
	}
	return props, nil
}
