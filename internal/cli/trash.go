// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/trash"
)

func (a *app) trashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Empty the trash or restore from it",
	}

	var restore trash.RestoreRequest
	restoreCmd := &cobra.Command{
		Use:   "restore <path>",
		Short: "Restore a resource to its original place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			restore.Path = args[0]
			op, err := a.client.Trash.Restore(cmd.Context(), restore)
			if err != nil {
				return err
			}
			return a.printOperation(cmd, op)
		},
	}
	restoreCmd.Flags().StringVar(&restore.Name, "name", "", "new name of the restored resource")
	restoreCmd.Flags().BoolVarP(&restore.Overwrite, "overwrite", "f", false, "replace a resource in the way")

	emptyCmd := &cobra.Command{
		Use:   "empty [path]",
		Short: "Delete everything in the trash, or a single resource",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req trash.EmptyRequest
			if len(args) == 1 {
				req.Path = args[0]
			}
			_, err := a.client.Trash.Empty(cmd.Context(), req)
			return err
		},
	}

	cmd.AddCommand(restoreCmd, emptyCmd)
	return cmd
}
