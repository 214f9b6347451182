package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/claude/repplan/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) currentRoutine(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	row, err := h.ds.LatestRoutine(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return jsonResource(req.Params.URI, map[string]string{"status": "no routine generated yet"})
		}
		return nil, err
	}

	return jsonResource(req.Params.URI, row)
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx, "")
	if err != nil {
		return nil, err
	}

	return jsonResource(req.Params.URI, exercises)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
