// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/transfer"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

func (a *app) uploadCmd() *cobra.Command {
	var overwrite, skipExists, quiet bool
	cmd := &cobra.Command{
		Use:   "upload <local> <path>",
		Short: "Upload a file or a directory tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := os.Stat(args[0])
			if err != nil {
				return errors.Wrap(err, "Cannot read local path")
			}
			out := cmd.OutOrStdout()

			if st.IsDir() {
				results, err := a.client.Transfer.UploadDirectory(cmd.Context(), transfer.UploadDirectoryRequest{
					LocalPath:  args[0],
					Path:       args[1],
					Overwrite:  overwrite,
					SkipExists: skipExists,
				})
				for _, r := range results {
					printUpload(out, r)
				}
				return err
			}

			var progress *utils.ProgressHook
			if !quiet {
				progress = utils.WriterProgress(cmd.ErrOrStderr())
			}
			res, err := a.client.Transfer.UploadFile(cmd.Context(), transfer.UploadFileRequest{
				LocalPath:  args[0],
				Path:       args[1],
				Overwrite:  overwrite,
				SkipExists: skipExists,
				Progress:   progress,
			})
			if err != nil {
				return err
			}
			printUpload(out, *res)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace existing files")
	cmd.Flags().BoolVar(&skipExists, "skip-exists", false, "with --overwrite, skip files whose md5 already matches")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not render progress")
	return cmd
}

func printUpload(out io.Writer, r transfer.UploadResult) {
	if r.Skipped {
		fmt.Fprintf(out, "skipped  %s\n", r.Path)
		return
	}
	fmt.Fprintf(out, "uploaded %s (%s)\n", r.Path, utils.HumanBytes(r.Size))
}

func (a *app) uploadURLCmd() *cobra.Command {
	var noWait bool
	cmd := &cobra.Command{
		Use:   "upload-url <url> <path>",
		Short: "Let the server download a URL into the disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := a.client.Transfer.UploadFromURL(cmd.Context(), transfer.UploadFromURLRequest{
				URL:         args[0],
				Path:        args[1],
				WaitOptions: config.WaitOptions{NoWait: noWait},
			})
			if err != nil {
				return err
			}
			return a.printOperation(cmd, op)
		},
	}
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return once the server accepted the request")
	return cmd
}

func (a *app) downloadCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "download <path> [local]",
		Short: "Download a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := ""
			if len(args) == 2 {
				local = args[1]
			}
			req := transfer.DownloadRequest{Path: args[0]}
			if !quiet {
				req.Progress = utils.WriterProgress(cmd.ErrOrStderr())
			}
			info, err := a.client.Transfer.DownloadToFile(cmd.Context(), req, local)
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not render progress")
	return cmd
}

func (a *app) mirrorCmd() *cobra.Command {
	var req transfer.MirrorRequest
	cmd := &cobra.Command{
		Use:   "mirror <path>",
		Short: "Copy a disk file into the configured S3 bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Path = args[0]
			location, err := a.client.Transfer.MirrorToS3(cmd.Context(), req)
			if err != nil {
				return errors.Wrapf(err, "Mirror of %s failed", args[0])
			}
			if location != "" {
				fmt.Fprintln(cmd.OutOrStdout(), location)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Bucket, "bucket", "", "target bucket (default from configuration)")
	cmd.Flags().StringVar(&req.Key, "key", "", "object key (default is the disk path)")
	cmd.Flags().BoolVar(&req.SkipExists, "skip-exists", false, "leave existing objects untouched")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var req transfer.ImportRequest
	cmd := &cobra.Command{
		Use:   "import <key> <path>",
		Short: "Upload an S3 object to the disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Key, req.Path = args[0], args[1]
			res, err := a.client.Transfer.ImportFromS3(cmd.Context(), req)
			if err != nil {
				return err
			}
			printUpload(cmd.OutOrStdout(), *res)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Bucket, "bucket", "", "source bucket (default from configuration)")
	cmd.Flags().BoolVarP(&req.Overwrite, "overwrite", "f", false, "replace an existing file")
	cmd.Flags().BoolVar(&req.SkipExists, "skip-exists", false, "with --overwrite, skip when the md5 matches")
	return cmd
}
