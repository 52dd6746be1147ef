// Package action implements the pluggable validate/execute action
// pipeline: the ActionRegistry dispatch table and the concrete handlers
// for build, demolish, move, upgrade, build_wall and the train/research
// stubs.
package action

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/spatial"
)

// UseCase bundles every collaborator a handler needs: the store, the
// transaction scope, the read-only config and spatial checkers, metrics
// and the clock. Handlers receive it as a *UseCase argument rather
// than reaching for package-level singletons, which keeps them testable
// against synthetic catalogues (spec §9).
type UseCase struct {
	Store   ports.FiefdomStore
	Tx      ports.TxManager
	Config  *config.Cache
	Spatial *spatial.Checker
	Metrics ports.ActionMetrics
	Now     func() time.Time
	Tracer  trace.Tracer
}

// NewUseCase wires a UseCase with the default wall-clock Now and a tracer
// named after this package.
func NewUseCase(store ports.FiefdomStore, tx ports.TxManager, cfg *config.Cache, metrics ports.ActionMetrics) *UseCase {
	return &UseCase{
		Store:   store,
		Tx:      tx,
		Config:  cfg,
		Spatial: spatial.New(cfg),
		Metrics: metrics,
		Now:     time.Now,
		Tracer:  otel.Tracer("fiefdomengine/action"),
	}
}

// ActionHandler is the shape every registered action presents: validate
// never mutates state; execute re-validates, then performs the mutation
// inside a TransactionScope and commits only on success.
type ActionHandler interface {
	Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult
	Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult
	Description() string
}

// ActionSpec is one registered entry of the ActionRegistry.
type ActionSpec struct {
	Tag         string
	Handler     ActionHandler
	Description string
}

// Registry holds the tag -> {validate, execute} dispatch table. Populated
// at startup and read-only thereafter (spec §5).
type Registry struct {
	specs map[string]ActionSpec
}

// NewRegistry returns a Registry pre-populated with the fixed set of
// actions the engine supports (spec §4.5).
func NewRegistry() *Registry {
	r := &Registry{specs: map[string]ActionSpec{}}
	r.Register("build", buildHandler{}, "Build structures")
	r.Register("demolish", demolishHandler{}, "Demolish buildings (80% refund)")
	r.Register("move", moveHandler{}, "Move buildings (10% cost)")
	r.Register("build_wall", buildWallHandler{}, "Build wall generations")
	r.Register("upgrade", upgradeHandler{}, "Upgrade buildings and walls")
	r.Register("train_troops", trainTroopsHandler{}, "Train combatants")
	r.Register("research_magic", researchMagicHandler{}, "Research magic")
	r.Register("research_tech", researchTechHandler{}, "Research technology")
	return r
}

// Register adds or replaces a tag's handler.
func (r *Registry) Register(tag string, h ActionHandler, description string) {
	r.specs[tag] = ActionSpec{Tag: tag, Handler: h, Description: description}
}

func (r *Registry) lookup(tag string) (ActionSpec, bool) {
	spec, ok := r.specs[tag]
	return spec, ok
}

// Validate dispatches to the tag's validate function, or returns
// unknown_action.
func (r *Registry) Validate(ctx context.Context, uc *UseCase, tag string, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	spec, ok := r.lookup(tag)
	if !ok {
		return fiefdom.NewActionResult().Fail("unknown_action", "unknown action: "+tag)
	}
	return spec.Handler.Validate(ctx, uc, payload, actx)
}

// Execute dispatches to the tag's execute function, or returns
// unknown_action.
func (r *Registry) Execute(ctx context.Context, uc *UseCase, tag string, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	spec, ok := r.lookup(tag)
	if !ok {
		return fiefdom.NewActionResult().Fail("unknown_action", "unknown action: "+tag)
	}
	return spec.Handler.Execute(ctx, uc, payload, actx)
}

// ValidateAndExecute runs validate; on OK it runs execute, otherwise it
// returns the validate result untouched. This is the engine's single
// inbound contract (spec §6).
func (r *Registry) ValidateAndExecute(ctx context.Context, uc *UseCase, tag string, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	ctx, span := uc.Tracer.Start(ctx, "validateAndExecute",
		trace.WithAttributes(
			attribute.String("action.tag", tag),
			attribute.Int64("fiefdom.id", actx.RequestingFiefdomID),
			attribute.String("request.id", actx.RequestID),
		),
	)
	defer span.End()

	validated := r.Validate(ctx, uc, tag, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		span.SetAttributes(attribute.String("action.result", string(validated.Status)), attribute.String("action.error_code", validated.ErrorCode))
		if uc.Metrics != nil {
			uc.Metrics.RecordFailure()
		}
		return validated
	}

	result := r.Execute(ctx, uc, tag, payload, actx)
	span.SetAttributes(attribute.String("action.result", string(result.Status)))
	if uc.Metrics != nil {
		switch {
		case result.Status == fiefdom.StatusOK:
			uc.Metrics.RecordSuccess(tag)
		case result.ErrorCode == "database_error":
			uc.Metrics.RecordConflict()
		default:
			uc.Metrics.RecordFailure()
		}
	}
	return result
}
