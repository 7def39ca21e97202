// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk

import (
	"time"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

// Preview options shared by the listing requests.
type Preview struct {
	Size string // "S", "M", "XL", "120x240", ...
	Crop bool
}

func (p Preview) params(params config.Params) {
	params["preview_size"] = p.Size
	if p.Crop {
		params["preview_crop"] = true
	}
}

type MetaRequest struct {
	Path   string
	Sort   string
	Limit  *int
	Offset *int
	Fields []string
	Preview
	// Trash reads the resource from the trash instead of the disk.
	Trash bool
}

type FilesListRequest struct {
	Limit     *int
	Offset    *int
	MediaType []string
	Fields    []string
	Preview
}

type LastUploadedRequest struct {
	Limit     *int
	MediaType []string
	Fields    []string
	Preview
}

type PublishedListRequest struct {
	Limit  *int
	Offset *int
	Type   string // "dir" or "file"
	Fields []string
	Preview
}

type SetMetaRequest struct {
	Path             string
	CustomProperties map[string]any
	Fields           []string
}

type CreateFolderRequest struct {
	Path   string
	Fields []string
}

type CopyRequest struct {
	From      string
	To        string
	Overwrite bool
	Fields    []string
	config.WaitOptions
}

type MoveRequest struct {
	From      string
	To        string
	Overwrite bool
	Fields    []string
	config.WaitOptions
}

type DeleteRequest struct {
	Path        string
	Permanently bool
	config.WaitOptions
}

// Disk is the answer of GET disk/.
type Disk struct {
	TrashSize     int64             `json:"trash_size"`
	TotalSpace    int64             `json:"total_space"`
	UsedSpace     int64             `json:"used_space"`
	MaxFileSize   int64             `json:"max_file_size,omitempty"`
	IsPaid        bool              `json:"is_paid,omitempty"`
	Revision      int64             `json:"revision,omitempty"`
	SystemFolders map[string]string `json:"system_folders,omitempty"`
	User          *User             `json:"user,omitempty"`
}

type User struct {
	Country     string `json:"country,omitempty"`
	Login       string `json:"login,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	UID         string `json:"uid,omitempty"`
}

// Resource is a file or a folder, on the disk, in the trash or published.
type Resource struct {
	Name             string         `json:"name,omitempty"`
	Path             string         `json:"path,omitempty"`
	Type             string         `json:"type,omitempty"`
	ResourceID       string         `json:"resource_id,omitempty"`
	MD5              string         `json:"md5,omitempty"`
	SHA256           string         `json:"sha256,omitempty"`
	Size             int64          `json:"size,omitempty"`
	MimeType         string         `json:"mime_type,omitempty"`
	MediaType        string         `json:"media_type,omitempty"`
	Preview          string         `json:"preview,omitempty"`
	File             string         `json:"file,omitempty"`
	PublicKey        string         `json:"public_key,omitempty"`
	PublicURL        string         `json:"public_url,omitempty"`
	OriginPath       string         `json:"origin_path,omitempty"`
	Created          *time.Time     `json:"created,omitempty"`
	Modified         *time.Time     `json:"modified,omitempty"`
	Deleted          *time.Time     `json:"deleted,omitempty"`
	Revision         int64          `json:"revision,omitempty"`
	CustomProperties map[string]any `json:"custom_properties,omitempty"`
	Embedded         *ResourceList  `json:"_embedded,omitempty"`
}

// ResourceList is the content of a folder.
type ResourceList struct {
	Sort   string     `json:"sort,omitempty"`
	Path   string     `json:"path,omitempty"`
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
	Total  int        `json:"total,omitempty"`
}

type FilesResourceList struct {
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
}

type LastUploadedResourceList struct {
	Items []Resource `json:"items"`
	Limit int        `json:"limit,omitempty"`
}

type PublicResourcesList struct {
	Items  []Resource `json:"items"`
	Type   string     `json:"type,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
}

// Link is returned by calls that point to another resource or to an operation.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method,omitempty"`
	Templated bool   `json:"templated,omitempty"`
}

// Operation is the result of a call that may run asynchronously. A synchronous
// completion links to the resource, an awaited one carries the final Status, and a
// call made with NoWait is Pending and links to the operation itself.
type Operation struct {
	Link
	Status  string `json:"status,omitempty"`
	Pending bool   `json:"-"`
}

// Done reports whether the operation is known to have completed.
func (o *Operation) Done() bool {
	return !o.Pending || o.Status == config.OperationSuccess
}
