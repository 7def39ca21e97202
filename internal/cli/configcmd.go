// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

func (a *app) configCmd() *cobra.Command {
	var in utils.Settings
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Save settings into an environment of the INI file",
		Long:        `Values given as flags replace the stored ones; the environment becomes the current one.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, env, err := utils.LoadSettings(a.iniPath, a.env)
			if err != nil {
				return errors.Wrap(err, "Failed to load configuration")
			}
			apply(&s.AccessToken, in.AccessToken)
			apply(&s.BaseURL, in.BaseURL)
			apply(&s.PollInterval, in.PollInterval)
			apply(&s.Timeout, in.Timeout)
			apply(&s.AwsRegion, in.AwsRegion)
			apply(&s.AwsEndpointURL, in.AwsEndpointURL)
			apply(&s.S3Bucket, in.S3Bucket)

			if _, err := s.Config(); err != nil {
				return err
			}
			if err := utils.SaveSettings(a.iniPath, env, s); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved environment %q\n", env)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.AccessToken, "token", "", "OAuth token")
	f.StringVar(&in.BaseURL, "base-url", "", "API base URL")
	f.StringVar(&in.PollInterval, "poll-interval", "", "pause between operation status checks")
	f.StringVar(&in.Timeout, "timeout", "", "HTTP timeout, 0 for none")
	f.StringVar(&in.AwsRegion, "s3-region", "", "S3 region")
	f.StringVar(&in.AwsEndpointURL, "s3-endpoint", "", "S3 endpoint URL")
	f.StringVar(&in.S3Bucket, "s3-bucket", "", "default S3 bucket")
	return cmd
}

func apply(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
