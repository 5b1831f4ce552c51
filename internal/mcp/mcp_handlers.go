package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/obslog"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleDetectDrift(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.BaselinePath = request.GetString("baseline", "")
	cfg.CurrentPath = request.GetString("current", "")
	if v := request.GetString("numerical", ""); v != "" {
		cfg.NumericalFeatures = contract.SplitCommaList(v)
	}
	if v := request.GetString("categorical", ""); v != "" {
		cfg.CategoricalFeatures = contract.SplitCommaList(v)
	}
	if v := request.GetInt("psi_bins", 0); v > 0 {
		cfg.PSIBins = v
	}

	report, err := core.GetDriftResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("drift detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateFairness(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DataPath = request.GetString("data", "")
	cfg.SensitiveAttrs = contract.SplitCommaList(request.GetString("attrs", ""))
	cfg.PredictionColumn = request.GetString("pred_col", "prediction")
	cfg.LabelColumn = request.GetString("label_col", "")

	report, err := core.GetFairnessResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fairness evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateIntersectional(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DataPath = request.GetString("data", "")
	cfg.SensitiveAttrs = contract.SplitCommaList(request.GetString("attrs", ""))
	cfg.PredictionColumn = request.GetString("pred_col", "prediction")
	if v := request.GetInt("min_group_size", 0); v > 0 {
		cfg.MinGroupSize = v
	}
	if v := request.GetInt("max_combination", 0); v > 0 {
		cfg.MaxCombinationSize = v
	}

	board, err := core.GetIntersectionalResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("intersectional evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExplainDrift(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.BaselinePath = request.GetString("baseline", "")
	cfg.CurrentPath = request.GetString("current", "")
	cfg.ModelPath = request.GetString("model", "")
	if v := request.GetInt("sample_size", 0); v > 0 {
		cfg.SampleSize = v
	}
	if v := request.GetInt("top_k", 0); v > 0 {
		cfg.TopK = v
	}

	report, err := core.GetRootCauseResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("root cause analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleStoreStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	backend := h.baseCfg.StoreBackend
	if v := request.GetString("backend", ""); v != "" {
		backend = schema.DatabaseBackend(v)
	}
	connect := h.baseCfg.StoreConnect
	if v := request.GetString("connect", ""); v != "" {
		connect = v
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connect); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid store parameters: %v", err)), nil
	}

	store, err := obslog.NewStore(backend, connect)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store connection failed: %v", err)), nil
	}
	defer func() { _ = store.Close() }()

	status, err := store.Status()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
