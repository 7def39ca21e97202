// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"io"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

// -------- Upload --------

type UploadRequest struct {
	// Content is sent as is. An io.Seeker is rewound after the skip check hashed it;
	// other readers are buffered for that check.
	Content   io.Reader
	Path      string
	Overwrite bool
	// SkipExists, together with Overwrite, skips the upload when the remote file has
	// the same md5 as Content.
	SkipExists bool
	// Size, when positive, is sent as Content-Length for readers whose length
	// cannot be found out.
	Size     int64
	Progress *utils.ProgressHook
}

type UploadFileRequest struct {
	LocalPath  string
	Path       string
	Overwrite  bool
	SkipExists bool
	Progress   *utils.ProgressHook
}

type UploadDirectoryRequest struct {
	LocalPath  string
	Path       string
	Overwrite  bool
	SkipExists bool
}

type UploadFromURLRequest struct {
	URL              string
	Path             string
	Fields           []string
	DisableRedirects bool
	config.WaitOptions
}

type UploadResult struct {
	Path string
	// Skipped is set when an identical file was already on the disk.
	Skipped bool
	Size    int64
}

// -------- Download --------

type DownloadRequest struct {
	Path     string
	Progress *utils.ProgressHook
}

type DownloadInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

// -------- S3 --------

type MirrorRequest struct {
	Path   string // file on the disk
	Bucket string // empty uses the configured bucket
	Key    string // empty uses Path without the "disk:/" prefix
	// SkipExists leaves an existing object untouched.
	SkipExists bool
}

type ImportRequest struct {
	Bucket     string
	Key        string
	Path       string
	Overwrite  bool
	SkipExists bool
}
