package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"fiefdomengine/internal/app/action"
	"fiefdomengine/internal/domain/fiefdom"
)

const fiefdomIDHeader = "X-Fiefdom-ID"
const characterIDHeader = "X-Character-ID"
const requestIDHeader = "X-Request-ID"

// kpiSnapshotProvider is satisfied by inmemory.Recorder without this
// package depending on its concrete type.
type kpiSnapshotProvider interface {
	SnapshotAny() any
}

// Handler is the thin HTTP edge ahead of the action engine (spec.md §1:
// out of scope, kept only so the engine has a caller).
type Handler struct {
	Registry *action.Registry
	UseCase  *action.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	fief := s.Group("/api/fiefdom")
	fief.POST("/action", h.action)
	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	Tag     string         `json:"tag"`
	Payload map[string]any `json:"payload"`
}

type actionResponse struct {
	Status          string         `json:"status"`
	ErrorCode       string         `json:"error_code,omitempty"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	Result          map[string]any `json:"result,omitempty"`
	SideEffects     []diffValue    `json:"side_effects,omitempty"`
	ActionTimestamp int64          `json:"action_timestamp"`
}

type diffValue struct {
	Field      string `json:"field"`
	SourceType string `json:"source_type"`
	SourceID   int64  `json:"source_id"`
	EntityKey  string `json:"entity_key"`
	FromValue  any    `json:"from_value"`
	ToValue    any    `json:"to_value"`
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	actx, err := h.buildActionContext(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(body.Tag) == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", "tag is required")
		return
	}
	if body.Payload == nil {
		body.Payload = map[string]any{}
	}

	result := h.Registry.ValidateAndExecute(c, h.UseCase, body.Tag, body.Payload, actx)
	ctx.JSON(statusCode(result), toResponse(result))
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) buildActionContext(ctx *app.RequestContext) (*fiefdom.ActionContext, error) {
	fiefdomID, err := headerInt64(ctx, fiefdomIDHeader)
	if err != nil {
		return nil, errors.New("missing or invalid " + fiefdomIDHeader)
	}
	characterID, _ := headerInt64(ctx, characterIDHeader)

	requestID := strings.TrimSpace(string(ctx.GetHeader(requestIDHeader)))
	if requestID == "" {
		requestID = uuid.NewString()
	}

	return &fiefdom.ActionContext{
		RequestingCharacterID: characterID,
		RequestingFiefdomID:   fiefdomID,
		RequestID:             requestID,
		RemoteIP:              ctx.ClientIP(),
	}, nil
}

func headerInt64(ctx *app.RequestContext, header string) (int64, error) {
	raw := strings.TrimSpace(string(ctx.GetHeader(header)))
	if raw == "" {
		return 0, errors.New("missing header " + header)
	}
	var v int64
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return 0, err
	}
	return v, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func toResponse(result *fiefdom.ActionResult) actionResponse {
	resp := actionResponse{
		Status:          string(result.Status),
		ErrorCode:       result.ErrorCode,
		ErrorMessage:    result.ErrorMessage,
		Result:          result.Result,
		ActionTimestamp: result.ActionTimestamp,
	}
	for _, d := range result.SideEffects {
		resp.SideEffects = append(resp.SideEffects, diffValue{
			Field:      d.Field,
			SourceType: d.SourceType,
			SourceID:   d.SourceID,
			EntityKey:  d.EntityKey,
			FromValue:  d.FromValue,
			ToValue:    d.ToValue,
		})
	}
	return resp
}

func statusCode(result *fiefdom.ActionResult) int {
	if result.Status == fiefdom.StatusOK {
		return consts.StatusOK
	}
	switch result.ErrorCode {
	case "unknown_action", "invalid_request":
		return consts.StatusBadRequest
	case "not_found":
		return consts.StatusNotFound
	case "database_error":
		return consts.StatusConflict
	case "not_implemented":
		return consts.StatusNotImplemented
	default:
		return consts.StatusConflict
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
