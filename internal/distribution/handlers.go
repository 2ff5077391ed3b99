package distribution

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// Uploads are capped well above any plausible receipt PDF
const maxUploadSize = int64(16 << 20) // 16MB

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// parseResponse is the payload returned by both parsing endpoints
type parseResponse struct {
	ReceiptID string `json:"receipt_id"`
	Items     any    `json:"items"`
}

// handleParse parses pasted receipt text
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiptText string `json:"receipt_text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "No receipt text provided", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ReceiptText) == "" {
		jsonError(w, "Receipt text is empty", http.StatusBadRequest)
		return
	}

	id, receipt, err := s.service.ParseText(req.ReceiptText)
	if err != nil {
		slog.Error("Error parsing receipt", "error", err)
		jsonError(w, "Failed to parse receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(parseResponse{ReceiptID: id, Items: receipt.Items}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUploadPDF parses an uploaded PDF receipt
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 16MB."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		jsonError(w, "File type not allowed. Only PDF files are accepted.", http.StatusBadRequest)
		return
	}

	if header.Size > maxUploadSize {
		jsonError(w, "File is too large. Maximum size is 16MB.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	id, receipt, err := s.service.ParsePDF(header.Filename, data)
	if err != nil {
		slog.Error("Error processing PDF", "filename", header.Filename, "error", err)
		jsonError(w, "Failed to process PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(parseResponse{ReceiptID: id, Items: receipt.Items}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleSaveDistribution persists a cost distribution
func (s *Server) handleSaveDistribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiptName string  `json:"receipt_name"`
		Total       float64 `json:"total"`
		Items       []Item  `json:"items"`
		Users       []User  `json:"users"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "No distribution data provided", http.StatusBadRequest)
		return
	}

	dist, err := s.service.SaveDistribution(req.ReceiptName, req.Total, req.Items, req.Users)
	if err != nil {
		slog.Error("Error saving distribution", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dist); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListDistributions returns all saved distributions, newest first
func (s *Server) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	distributions, err := s.service.ListDistributions()
	if err != nil {
		slog.Error("Error listing distributions", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if distributions == nil {
		distributions = []*Distribution{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"distributions": distributions}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetDistribution returns a single distribution
func (s *Server) handleGetDistribution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Distribution ID required", http.StatusBadRequest)
		return
	}

	dist, err := s.service.GetDistribution(id)
	if err != nil {
		corsError(w, "Distribution not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dist); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleAnalytics returns the per-user spending report
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Analytics()
	if err != nil {
		slog.Error("Error building analytics report", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
