// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the bias drift MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Bias Drift Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: detect_drift ---
	s.AddTool(mcp.NewTool("detect_drift",
		mcp.WithDescription("Detect distribution drift between a baseline dataset and a current batch using KS, PSI and chi-square tests."),
		mcp.WithString("baseline", mcp.Description("Path to the baseline CSV dataset."), mcp.Required()),
		mcp.WithString("current", mcp.Description("Path to the current CSV batch."), mcp.Required()),
		mcp.WithString("numerical", mcp.Description("Comma-separated numerical feature columns (inferred when omitted).")),
		mcp.WithString("categorical", mcp.Description("Comma-separated categorical feature columns (inferred when omitted).")),
		mcp.WithNumber("psi_bins", mcp.Description("Number of equal-frequency PSI bins. Defaults to 10.")),
	), h.handleDetectDrift)

	// --- 2. Tool: evaluate_fairness ---
	s.AddTool(mcp.NewTool("evaluate_fairness",
		mcp.WithDescription("Evaluate group fairness metrics (disparate impact, demographic parity, equalized odds) over sensitive attributes."),
		mcp.WithString("data", mcp.Description("Path to the CSV dataset with predictions."), mcp.Required()),
		mcp.WithString("attrs", mcp.Description("Comma-separated sensitive attribute columns."), mcp.Required()),
		mcp.WithString("pred_col", mcp.Description("Binary prediction column. Defaults to 'prediction'.")),
		mcp.WithString("label_col", mcp.Description("Binary ground-truth column (enables equalized odds and accuracy).")),
	), h.handleEvaluateFairness)

	// --- 3. Tool: evaluate_intersectional ---
	s.AddTool(mcp.NewTool("evaluate_intersectional",
		mcp.WithDescription("Rank intersectional subgroups (combinations of sensitive attributes) by selection-rate disparity."),
		mcp.WithString("data", mcp.Description("Path to the CSV dataset with predictions."), mcp.Required()),
		mcp.WithString("attrs", mcp.Description("Comma-separated sensitive attribute columns."), mcp.Required()),
		mcp.WithString("pred_col", mcp.Description("Binary prediction column. Defaults to 'prediction'.")),
		mcp.WithNumber("min_group_size", mcp.Description("Smallest subgroup kept on the leaderboard. Defaults to 10.")),
		mcp.WithNumber("max_combination", mcp.Description("Largest attribute combination size. Defaults to 3.")),
	), h.handleEvaluateIntersectional)

	// --- 4. Tool: explain_drift ---
	s.AddTool(mcp.NewTool("explain_drift",
		mcp.WithDescription("Attribute detected drift to individual features by comparing model attribution between baseline and current samples."),
		mcp.WithString("baseline", mcp.Description("Path to the baseline CSV dataset."), mcp.Required()),
		mcp.WithString("current", mcp.Description("Path to the current CSV batch."), mcp.Required()),
		mcp.WithString("model", mcp.Description("Path to the model weights JSON file."), mcp.Required()),
		mcp.WithNumber("sample_size", mcp.Description("Rows sampled per frame. Defaults to 100.")),
		mcp.WithNumber("top_k", mcp.Description("Number of top drivers reported. Defaults to 3.")),
	), h.handleExplainDrift)

	// --- 5. Tool: store_status ---
	s.AddTool(mcp.NewTool("store_status",
		mcp.WithDescription("Report the observation store backend, connectivity and logged observation count."),
		mcp.WithString("backend", mcp.Description("Store backend (memory, sqlite, mysql, postgresql). Defaults to the configured backend.")),
		mcp.WithString("connect", mcp.Description("Connection string for the sql backends.")),
	), h.handleStoreStatus)

	return s
}

// StartMCPServer starts the bias drift MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
