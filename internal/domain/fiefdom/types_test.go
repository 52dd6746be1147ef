package fiefdom

import "testing"

func TestResourcesCloneIsIndependent(t *testing.T) {
	original := Resources{ResourceGold: 10}
	clone := original.Clone()
	clone[ResourceGold] = 999

	if original[ResourceGold] != 10 {
		t.Fatalf("expected original to be unaffected by mutating the clone, got %d", original[ResourceGold])
	}
}

func TestFiefdomBalanceRoundTrips(t *testing.T) {
	f := Fiefdom{Gold: 1, Wood: 2, Stone: 3, Steel: 4, Bronze: 5, Grain: 6, Leather: 7, Mana: 8}
	balance := f.Balance()

	var g Fiefdom
	g.SetBalance(balance)
	if g != (Fiefdom{Gold: 1, Wood: 2, Stone: 3, Steel: 4, Bronze: 5, Grain: 6, Leather: 7, Mana: 8}) {
		t.Fatalf("SetBalance(Balance()) did not round-trip: %+v", g)
	}
}

func TestActionResultFailDiscardsStatus(t *testing.T) {
	r := NewActionResult()
	r.AppendDiff("gold", "fiefdom", 1, 100, 70)
	r.Fail("insufficient_resources", "not enough gold")

	if r.Status != StatusFail {
		t.Fatalf("expected StatusFail, got %v", r.Status)
	}
	if r.ErrorCode != "insufficient_resources" {
		t.Fatalf("unexpected error code %q", r.ErrorCode)
	}
	if len(r.SideEffects) != 1 {
		t.Fatalf("expected the diff appended before Fail to remain, got %d", len(r.SideEffects))
	}
}

func TestActionResultOkDefaultsMessage(t *testing.T) {
	r := NewActionResult().Ok()
	if r.Status != StatusOK {
		t.Fatalf("expected StatusOK, got %v", r.Status)
	}
	if r.ErrorMessage != "OK" {
		t.Fatalf("expected default OK message, got %q", r.ErrorMessage)
	}
}
