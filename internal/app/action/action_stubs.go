package action

import (
	"context"

	"fiefdomengine/internal/domain/fiefdom"
)

// trainTroopsHandler checks fiefdom_id and combatant_type and ownership on
// validate and reports not_implemented on execute. researchMagicHandler and
// researchTechHandler check no fields and no ownership: both their validate
// and their execute report not_implemented. No handler here reads the
// combatant or magic/tech catalogues.

var trainTroopsFields = []fieldSpec{
	{Name: "fiefdom_id", Code: "missing_fields", Schema: intSchema},
	{Name: "combatant_type", Code: "missing_fields", Schema: stringSchema},
}

type trainTroopsHandler struct{}

func (trainTroopsHandler) Description() string { return "Train combatants (not yet implemented)" }

func (trainTroopsHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()
	fields, code, msg, ok := extractFields(payload, trainTroopsFields)
	if !ok {
		return result.Fail(code, msg)
	}
	if toInt64(fields["fiefdom_id"]) != actx.RequestingFiefdomID {
		return result.Fail("not_owner", "User does not own this fiefdom")
	}
	return result.Ok()
}

func (trainTroopsHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	return fiefdom.NewActionResult().Fail("not_implemented", "Training troops not yet implemented")
}

type researchMagicHandler struct{}

func (researchMagicHandler) Description() string { return "Research magic (not yet implemented)" }

func (researchMagicHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	return fiefdom.NewActionResult().Fail("not_implemented", "Magic research not yet implemented")
}

func (researchMagicHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	return fiefdom.NewActionResult().Fail("not_implemented", "Magic research not yet implemented")
}

type researchTechHandler struct{}

func (researchTechHandler) Description() string { return "Research technology (not yet implemented)" }

func (researchTechHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	return fiefdom.NewActionResult().Fail("not_implemented", "Technology research not yet implemented")
}

func (researchTechHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	return fiefdom.NewActionResult().Fail("not_implemented", "Technology research not yet implemented")
}
