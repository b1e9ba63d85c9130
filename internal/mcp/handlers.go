package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"tenderscan/internal/config"
	"tenderscan/internal/errors"
	"tenderscan/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// ProcessRequest represents the arguments for tender_process.
type ProcessRequest struct {
	File     string `json:"file,omitempty"`
	Text     string `json:"text,omitempty"`
	Filename string `json:"filename,omitempty"`
	NoLinks  bool   `json:"no_links,omitempty"`
}

// ScanRequest represents the arguments for tender_scan.
type ScanRequest struct {
	Text string `json:"text"`
}

// ResolveIDRequest represents the arguments for tender_resolve_id.
type ResolveIDRequest struct {
	Filename   string `json:"filename,omitempty"`
	Text       string `json:"text,omitempty"`
	NoGenerate bool   `json:"no_generate,omitempty"`
}

// ClassifyRequest represents the arguments for tender_classify.
type ClassifyRequest struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	Sender  string `json:"sender,omitempty"`
	HasPDF  bool   `json:"has_pdf,omitempty"`
	Text    string `json:"text,omitempty"`
}

// FetchRequest represents the arguments for tender_fetch.
type FetchRequest struct {
	TenderID string `json:"tender_id"`
	FromFile bool   `json:"from_file,omitempty"`
}

// ListRequest represents the arguments for tender_list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ReportRequest represents the arguments for tender_report.
type ReportRequest struct {
	Limit int  `json:"limit,omitempty"`
	HTML  bool `json:"html,omitempty"`
}

// Handler implementations

// HandleProcess handles the tender_process tool call.
func (h *Handlers) HandleProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProcessRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Process(ctx, h.db, h.cfg, ops.ProcessInput{
		File:     input.File,
		Text:     input.Text,
		Filename: input.Filename,
		NoLinks:  input.NoLinks,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleScan handles the tender_scan tool call.
func (h *Handlers) HandleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Scan(h.cfg, ops.ScanInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleResolveID handles the tender_resolve_id tool call.
func (h *Handlers) HandleResolveID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResolveIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ResolveID(h.cfg, ops.ResolveIDInput{
		Filename:   input.Filename,
		Text:       input.Text,
		NoGenerate: input.NoGenerate,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClassify handles the tender_classify tool call.
func (h *Handlers) HandleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClassifyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Classify(ops.ClassifyInput{
		Subject: input.Subject,
		Body:    input.Body,
		Sender:  input.Sender,
		HasPDF:  input.HasPDF,
		Text:    input.Text,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the tender_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, h.cfg, ops.FetchInput{
		TenderID: input.TenderID,
		FromFile: input.FromFile,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the tender_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleReport handles the tender_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Report(h.db, h.cfg, ops.ReportInput{
		Limit: input.Limit,
		HTML:  input.HTML,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if scanErr, ok := err.(*errors.ScanError); ok {
		errorObj := map[string]any{
			"code":    scanErr.Code,
			"message": scanErr.Message,
			"status":  scanErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if scanErr.Code != errors.ErrInternal && scanErr.Details != nil {
			errorObj["details"] = scanErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
