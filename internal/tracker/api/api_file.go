// Copyright 2025 Tracker Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"io"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

// UploadFile attaches a file to an issue as multipart form data.
// POST /files/upload/{issueId}
func (c *Client) UploadFile(ctx context.Context, issueId, filename string, content io.Reader) (*model.FileMeta, error) {
	var out model.FileMeta
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, content).
		SetResult(&out).
		SetPathParam("issueId", issueId).
		Post("/files/upload/{issueId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadFile fetches the raw content of an attachment.
// GET /files/{id}
func (c *Client) DownloadFile(ctx context.Context, fileId string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("fileId", fileId).
		Get("/files/{fileId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// DeleteFile removes an attachment.
// DELETE /files/{id}
func (c *Client) DeleteFile(ctx context.Context, fileId string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("fileId", fileId).
		Delete("/files/{fileId}")
	return check(resp, err)
}
