// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show quota and system folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.client.Disk.GetDiskInfo(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	}
}

func (a *app) lsCmd() *cobra.Command {
	var (
		limit int
		trash bool
	)
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a folder, or show the metadata of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := "/"
			if trash {
				p = "trash:/"
			}
			if len(args) == 1 {
				p = args[0]
			}
			res, err := a.client.Disk.GetMetaInfo(cmd.Context(), disk.MetaRequest{Path: p, Limit: &limit, Trash: trash})
			if err != nil {
				return err
			}
			if res.Embedded == nil {
				return a.print(cmd, res)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, item := range res.Embedded.Items {
				size := "-"
				if item.Type == "file" {
					size = utils.HumanBytes(item.Size)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", item.Type, size, item.Name)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum number of entries")
	cmd.Flags().BoolVar(&trash, "trash", false, "list the trash")
	return cmd
}

func (a *app) mkdirCmd() *cobra.Command {
	var existOK bool
	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.client.Disk.CreateFolder(cmd.Context(), disk.CreateFolderRequest{Path: args[0]})
			if existOK && config.IsFolderAlreadyExists(err) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&existOK, "exist-ok", "p", false, "no error if the folder exists")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	var (
		permanently bool
		noWait      bool
	)
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Move a resource to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.client.Disk.Delete(cmd.Context(), disk.DeleteRequest{
				Path:        args[0],
				Permanently: permanently,
				WaitOptions: config.WaitOptions{NoWait: noWait},
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&permanently, "permanently", false, "delete without going through the trash")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return once the server accepted the request")
	return cmd
}

func (a *app) copyCmd() *cobra.Command {
	var overwrite, noWait bool
	cmd := &cobra.Command{
		Use:   "cp <from> <to>",
		Short: "Copy a file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := a.client.Disk.Copy(cmd.Context(), disk.CopyRequest{
				From:        args[0],
				To:          args[1],
				Overwrite:   overwrite,
				WaitOptions: config.WaitOptions{NoWait: noWait},
			})
			if err != nil {
				return errors.Wrapf(err, "Copy of %s failed", args[0])
			}
			return a.printOperation(cmd, op)
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace the destination")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return once the server accepted the request")
	return cmd
}

func (a *app) moveCmd() *cobra.Command {
	var overwrite, noWait bool
	cmd := &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move or rename a file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := a.client.Disk.Move(cmd.Context(), disk.MoveRequest{
				From:        args[0],
				To:          args[1],
				Overwrite:   overwrite,
				WaitOptions: config.WaitOptions{NoWait: noWait},
			})
			if err != nil {
				return errors.Wrapf(err, "Move of %s failed", args[0])
			}
			return a.printOperation(cmd, op)
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace the destination")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return once the server accepted the request")
	return cmd
}

// printOperation shows the href of a pending operation, to be checked later.
func (a *app) printOperation(cmd *cobra.Command, op *disk.Operation) error {
	if op.Done() {
		return nil
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "operation: %s\n", op.Href)
	return err
}

func (a *app) publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <path>",
		Short: "Open a public link and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.client.Disk.Publish(cmd.Context(), args[0]); err != nil {
				return err
			}
			res, err := a.client.Disk.GetMetaInfo(cmd.Context(), disk.MetaRequest{
				Path:   args[0],
				Fields: []string{"public_url", "public_key"},
			})
			if err != nil {
				return errors.Wrap(err, "Published, but the link could not be read")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.PublicURL)
			return err
		},
	}
}

func (a *app) unpublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <path>",
		Short: "Close the public link of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.client.Disk.Unpublish(cmd.Context(), args[0])
			return err
		},
	}
}

func (a *app) metaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta <path> <file>...",
		Short: "Set custom properties from YAML or JSON files",
		Long: `Reads the custom properties from one or more YAML or JSON documents and sets
them on the resource. Later files win; nested maps are merged. A null value removes
the property.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Disk.SetMetaFromFiles(cmd.Context(), args[0], args[1:]...)
			if err != nil {
				return err
			}
			return a.print(cmd, res.CustomProperties)
		},
	}
}
