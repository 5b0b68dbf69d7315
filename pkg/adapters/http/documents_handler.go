// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"io"
	"net/http"

	"github.com/24mcab48-rohan/jarvis/pkg/core/schema"
	"github.com/24mcab48-rohan/jarvis/pkg/core/services"
)

const maxUploadSize = 512 * 1024 * 1024 // 512 MB

// handleUploadDocuments handles POST /v1/documents. The multipart form may
// carry several "files" parts; each file is extracted, chunked, embedded,
// and indexed in turn, with a per-file outcome in the response. A corrupt
// or unsupported file is reported and never aborts the rest of the batch.
func (h *Handler) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Error("Failed to parse multipart form", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "At least one file is required")
		return
	}

	var uploads []services.UploadedFile
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded file", "filename", header.Filename, "error", err)
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to read uploaded file")
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			h.logger.Error("Failed to read uploaded file", "filename", header.Filename, "error", err)
			h.writeError(w, http.StatusInternalServerError, "read_error", "Failed to read file content")
			return
		}
		uploads = append(uploads, services.UploadedFile{
			Filename: header.Filename,
			Content:  content,
		})
	}

	results := h.ingest.IngestFiles(r.Context(), uploads)

	outcomes := make([]schema.FileOutcome, 0, len(results))
	for _, res := range results {
		outcome := schema.FileOutcome{
			Filename: res.Filename,
			Status:   "indexed",
			Chunks:   res.Chunks,
		}
		if res.Err != nil {
			outcome.Status = "failed"
			outcome.Error = res.Err.Error()
		}
		outcomes = append(outcomes, outcome)
	}

	h.logger.Info("Upload batch processed", "files", len(results))
	writeJSON(w, http.StatusOK, schema.UploadResponse{
		Object: "list",
		Data:   outcomes,
	})
}
