// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package cli is the yadisk command line, a thin layer over the sdk services.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yadisk-tools/yadisk-sdk/sdk"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
	"sigs.k8s.io/yaml"
)

// commands with this annotation run without a configured client
const offline = "offline"

type app struct {
	iniPath string
	env     string
	verbose bool

	log    *logrus.Logger
	client *sdk.Client
}

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "yadisk",
		Short:        "Command line client for Yandex Disk",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[offline] == "true" {
				return nil
			}
			return a.connect(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.iniPath, "config", "", "INI file (default is ~/.yadisk.ini)")
	root.PersistentFlags().StringVarP(&a.env, "env", "e", "", "environment section of the INI file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every request")

	root.AddCommand(
		a.infoCmd(),
		a.lsCmd(),
		a.mkdirCmd(),
		a.rmCmd(),
		a.copyCmd(),
		a.moveCmd(),
		a.publishCmd(),
		a.unpublishCmd(),
		a.metaCmd(),
		a.uploadCmd(),
		a.uploadURLCmd(),
		a.downloadCmd(),
		a.trashCmd(),
		a.mirrorCmd(),
		a.importCmd(),
		a.configCmd(),
	)
	return root
}

// Execute runs the command line and exits with status 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) connect(cmd *cobra.Command) error {
	conf, err := utils.LoadConfig(a.iniPath, a.env)
	if err != nil {
		return errors.Wrap(err, "Failed to load configuration")
	}

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	a.client, err = sdk.New(cmd.Context(), conf, config.WithLogger(a.log))
	if err != nil {
		return errors.Wrap(err, "Failed to initialize client")
	}
	return nil
}

// print writes v as YAML.
func (a *app) print(cmd *cobra.Command, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "Failed to format output")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
