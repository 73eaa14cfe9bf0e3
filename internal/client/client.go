/*
 * Copyright (C) 2026 FleetSense Authors
 *
 * This file is part of fleetsense.
 *
 * fleetsense is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * fleetsense is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with fleetsense. If not, see the LICENSE file in the project root.
 */

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fleetsense/fleetsense/internal/models"
)

// APIError is a non-2xx response from the asset service carrying the
// structured detail message from its error payload.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("asset service returned status %d", e.Status)
}

// Client talks to the asset service over HTTP. Retries and auth are the
// caller's concern; the client only shapes requests and decodes responses.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches the full asset collection.
func (c *Client) List(ctx context.Context) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := c.getJSON(ctx, "/assets/", &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Get fetches one asset's full detail, including historical samples.
func (c *Client) Get(ctx context.Context, id int) (models.Asset, error) {
	var asset models.Asset
	if err := c.getJSON(ctx, fmt.Sprintf("/assets/%d", id), &asset); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// Ingest uploads a batch file and returns the new fleet plus the
// server-computed summary. Progress callbacks report bytes of the file
// transferred over size, as a 0-100 percentage; when size is negative the
// total is unknown and no progress is reported.
func (c *Client) Ingest(ctx context.Context, filename string, file io.Reader, size int64, onProgress func(int)) (*models.IngestResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	copied := make(chan struct{})
	go func() {
		defer close(copied)
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := file
		if onProgress != nil && size > 0 {
			src = &progressReader{r: file, total: size, report: onProgress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", pr)
	if err != nil {
		pr.CloseWithError(err)
		<-copied
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	// Do has consumed or abandoned the body by now. Closing the read side
	// unblocks the copier when the server rejected the upload mid-stream,
	// and the join guarantees no progress callback runs past this return.
	pr.Close()
	<-copied
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var result models.IngestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &result, nil
}

// ExportReport fetches the fleet report blob. The returned name is the
// service's suggested filename, if it sent one.
func (c *Client) ExportReport(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/export-report/", nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", decodeAPIError(resp)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read report: %w", err)
	}

	name := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	return blob, name, nil
}

// Clear removes every asset from the service.
func (c *Client) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/assets/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("clear request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// progressReader reports cumulative read progress as a monotone
// non-decreasing percentage clamped to 0-100.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent > p.last {
			p.last = percent
			p.report(percent)
		}
	}
	return n, err
}
