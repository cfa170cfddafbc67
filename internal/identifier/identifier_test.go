package identifier_test

import (
	"testing"

	"cartkeep/internal/identifier"
)

func TestAssignDropsStopWords(t *testing.T) {
	t.Parallel()

	got := identifier.Assign("The Legend of Zelda", map[string]struct{}{})
	if got != "legendofzelda" {
		t.Fatalf("Assign = %q, want %q", got, "legendofzelda")
	}
}

func TestAssignTruncatesToSixteen(t *testing.T) {
	t.Parallel()

	got := identifier.Assign("Castlevania Symphony of the Night", map[string]struct{}{})
	if len(got) > identifier.MaxLength {
		t.Fatalf("identifier too long: %q", got)
	}
	if got != "castlevaniasymph" {
		t.Fatalf("Assign = %q, want %q", got, "castlevaniasymph")
	}
}

func TestAssignResolvesCollisions(t *testing.T) {
	t.Parallel()

	existing := map[string]struct{}{}
	first := identifier.Assign("The Legend of Zelda", existing)
	existing[first] = struct{}{}

	second := identifier.Assign("The Legend of Zelda", existing)
	if second == first {
		t.Fatalf("collision not resolved: %q", second)
	}
	if second != first+"_2" {
		t.Fatalf("second assignment = %q, want %q", second, first+"_2")
	}

	existing[second] = struct{}{}
	third := identifier.Assign("The Legend of Zelda", existing)
	if third != first+"_3" {
		t.Fatalf("third assignment = %q, want %q", third, first+"_3")
	}
}

func TestAssignCollisionStaysWithinLimit(t *testing.T) {
	t.Parallel()

	existing := map[string]struct{}{}
	title := "Castlevania Symphony of the Night"
	for i := 0; i < 12; i++ {
		id := identifier.Assign(title, existing)
		if len(id) > identifier.MaxLength {
			t.Fatalf("identifier %q exceeds %d chars", id, identifier.MaxLength)
		}
		if _, dup := existing[id]; dup {
			t.Fatalf("duplicate identifier %q", id)
		}
		existing[id] = struct{}{}
	}
}

func TestAssignIgnoresParenthesizedTokens(t *testing.T) {
	t.Parallel()

	got := identifier.Assign("Metroid (USA)", map[string]struct{}{})
	if got != "metroid" {
		t.Fatalf("Assign = %q, want %q", got, "metroid")
	}
}

func TestAssignEmptyTitleFallsBack(t *testing.T) {
	t.Parallel()

	got := identifier.Assign("the a and", map[string]struct{}{})
	if got != "game" {
		t.Fatalf("Assign = %q, want fallback", got)
	}
}
