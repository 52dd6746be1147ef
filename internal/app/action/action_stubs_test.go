package action

import (
	"context"
	"testing"

	"fiefdomengine/internal/domain/fiefdom"
)

func TestTrainTroopsValidatesOwnershipBeforeExecute(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)

	payload := map[string]any{
		"fiefdom_id":     float64(1),
		"combatant_type": "militia",
	}

	result := trainTroopsHandler{}.Validate(context.Background(), rig.UC, payload, testContext(2))
	if result.ErrorCode != "not_owner" {
		t.Fatalf("expected not_owner for a mismatched requester, got %+v", result)
	}

	result = trainTroopsHandler{}.Validate(context.Background(), rig.UC, payload, testContext(1))
	if result.Status != fiefdom.StatusOK {
		t.Fatalf("expected validate to pass for the owning fiefdom, got %+v", result)
	}

	result = trainTroopsHandler{}.Execute(context.Background(), rig.UC, payload, testContext(1))
	if result.ErrorCode != "not_implemented" {
		t.Fatalf("expected not_implemented on execute, got %+v", result)
	}
}

func TestResearchMagicAlwaysNotImplemented(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)

	v := researchMagicHandler{}.Validate(context.Background(), rig.UC, map[string]any{}, testContext(1))
	if v.ErrorCode != "not_implemented" {
		t.Fatalf("expected not_implemented on validate, got %+v", v)
	}

	e := researchMagicHandler{}.Execute(context.Background(), rig.UC, map[string]any{}, testContext(1))
	if e.ErrorCode != "not_implemented" {
		t.Fatalf("expected not_implemented on execute, got %+v", e)
	}
}

func TestResearchTechAlwaysNotImplemented(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)

	v := researchTechHandler{}.Validate(context.Background(), rig.UC, map[string]any{}, testContext(1))
	if v.ErrorCode != "not_implemented" {
		t.Fatalf("expected not_implemented on validate, got %+v", v)
	}

	e := researchTechHandler{}.Execute(context.Background(), rig.UC, map[string]any{}, testContext(1))
	if e.ErrorCode != "not_implemented" {
		t.Fatalf("expected not_implemented on execute, got %+v", e)
	}
}
