// backend/src/handlers/statement_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/fursrevolut/backend/src/config"
	"github.com/username/fursrevolut/backend/src/logger"
	"github.com/username/fursrevolut/backend/src/security/validation"
	"github.com/username/fursrevolut/backend/src/services"
	"github.com/username/fursrevolut/backend/src/utils"
)

// StatementHandler serves the upload/report/document flow around a processed
// Revolut statement.
type StatementHandler struct {
	statementService services.StatementService
}

func NewStatementHandler(service services.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: service,
	}
}

// HandleUpload accepts the multipart statement upload plus the target tax year
// and responds with the processed statement summary. The tax number is NOT
// required here; it only gates document downloads.
func (h *StatementHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process the upload or the file is too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	year, err := validation.ValidateTaxYear(r.FormValue("year"))
	if err != nil {
		ctxLogger.Warn("Upload request with invalid tax year", "year", r.FormValue("year"), "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := validation.StripUnprintable(validation.SanitizeText(fileHeader.Filename))

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("Processing upload request", "filename", filename, "year", year, "detectedType", detectedContentType)

	result, err := h.statementService.ProcessStatement(file, year)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			// Distinct from "no transactions found": the file itself could not be read.
			utils.SendJSONError(w, "The file could not be read as CSV. Please check that you exported the statement in CSV format.", http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Statement processing failed", "filename", filename, "error", err)
		utils.SendJSONError(w, "Statement processing failed", http.StatusInternalServerError)
		return
	}

	response := struct {
		*services.StatementResult
		Message string `json:"message,omitempty"`
	}{StatementResult: result}
	if len(result.Funds) == 0 {
		response.Message = fmt.Sprintf("No transactions found for this file and year %d.", year)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}

// HandleGetStatement returns the cached statement summary with ETag support.
func (h *StatementHandler) HandleGetStatement(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	result, err := h.statementService.GetStatement(id)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	currentETag, etagErr := utils.GenerateETag(result)
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		ctxLogger.Warn("Proceeding without ETag check due to ETag generation error or empty ETag", "statementID", id)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error generating JSON response for statement", "statementID", id, "error", err)
	}
}

// HandleDownloadReport serves the plain-text transaction report as a download.
func (h *StatementHandler) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.statementService.GenerateReport(id)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "davcni_obrazci_revolut.txt"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		logger.FromContext(r.Context()).Error("Error writing report response", "statementID", id, "error", err)
	}
}

// HandleDownloadDocument serves one eDavki XML document. The tax number is
// required here and must be exactly 8 digits.
func (h *StatementHandler) HandleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "key")
	taxNumber := r.URL.Query().Get("taxNumber")

	document, err := h.statementService.GenerateTaxDocument(id, key, taxNumber)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(document.XML)); err != nil {
		logger.FromContext(r.Context()).Error("Error writing document response", "statementID", id, "key", key, "error", err)
	}
}

func (h *StatementHandler) sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStatementNotFound):
		utils.SendJSONError(w, "Statement not found or expired. Please upload the file again.", http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidTaxNumber):
		utils.SendJSONError(w, "Tax number must be exactly 8 digits.", http.StatusBadRequest)
	case errors.Is(err, services.ErrUnknownDocument):
		utils.SendJSONError(w, "This statement has no such document to download.", http.StatusNotFound)
	default:
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
