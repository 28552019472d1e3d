package status

import "testing"

func TestEmptyRegistryIsNominal(t *testing.T) {
	r := NewRegistry()
	if got := r.Message(); got != DefaultMessages[Nominal] {
		t.Fatalf("message = %q, want nominal", got)
	}
	if r.Head() != Nominal {
		t.Fatalf("head = %q, want nominal", r.Head())
	}
	if r.Len() != 0 {
		t.Fatalf("len = %d, want 0", r.Len())
	}
}

func TestOldestCodeWins(t *testing.T) {
	r := NewRegistry()
	r.Raise(Speed)
	r.Raise(Boost)

	if got := r.Message(); got != DefaultMessages[Speed] {
		t.Fatalf("message = %q, want speed message", got)
	}

	r.Clear(Speed)
	if got := r.Message(); got != DefaultMessages[Boost] {
		t.Fatalf("message after clear = %q, want boost message", got)
	}

	r.Clear(Boost)
	if got := r.Message(); got != DefaultMessages[Nominal] {
		t.Fatalf("message after clearing all = %q, want nominal", got)
	}
}

func TestRaiseIgnoresDuplicates(t *testing.T) {
	r := NewRegistry()
	r.Raise(Speed)
	r.Raise(Brake)
	r.Raise(Speed)

	got := r.Active()
	if len(got) != 2 || got[0] != Speed || got[1] != Brake {
		t.Fatalf("active = %v, want [speed brake]", got)
	}
}

func TestReRaiseAfterClearMovesToTail(t *testing.T) {
	r := NewRegistry()
	r.Raise(Speed)
	r.Raise(Boost)
	r.Clear(Speed)
	r.Raise(Speed)

	if r.Head() != Boost {
		t.Fatalf("head = %q, want boost", r.Head())
	}
}

func TestClearAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Raise(Speed)
	r.Clear("nonexistent")

	got := r.Active()
	if len(got) != 1 || got[0] != Speed {
		t.Fatalf("active = %v, want [speed]", got)
	}
	if !r.Has(Speed) || r.Has("nonexistent") {
		t.Fatalf("membership changed by clearing an absent code")
	}
}

func TestUnknownCodeRendersAsItself(t *testing.T) {
	r := NewRegistryWithMessages(map[Code]string{Nominal: "ok"})
	if got := r.Message(); got != "ok" {
		t.Fatalf("message = %q, want ok", got)
	}
	r.Raise("reactor")
	if got := r.Message(); got != "reactor" {
		t.Fatalf("message = %q, want reactor", got)
	}
}

func TestCustomTableIsCopied(t *testing.T) {
	table := map[Code]string{Nominal: "ok"}
	r := NewRegistryWithMessages(table)
	table[Nominal] = "changed"
	if got := r.Message(); got != "ok" {
		t.Fatalf("registry shares the caller's table: %q", got)
	}
}
