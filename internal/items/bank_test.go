package items

import (
	"os"
	"path/filepath"
	"testing"
)

func tempBank(t *testing.T, seed []Item) *Bank {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banco_items.json")
	b, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank() error: %v", err)
	}
	for _, it := range seed {
		if err := b.Add(it); err != nil {
			t.Fatalf("Add(%s) error: %v", it.ID, err)
		}
	}
	return b
}

func bankItem(id, conceptID string) Item {
	it := validItem()
	it.ID = id
	it.ConceptID = conceptID
	return it
}

func TestLoadBankMissingFile(t *testing.T) {
	b, err := LoadBank(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadBank() error: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestLoadBankBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco_items.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBank(path); err == nil {
		t.Error("LoadBank() = nil error on corrupt file, want error")
	}
}

func TestBankPickDeterministic(t *testing.T) {
	// Items added out of ID order; Pick must still favor the lowest ID.
	b := tempBank(t, []Item{
		bankItem("it-c", "alg-01"),
		bankItem("it-a", "alg-01"),
		bankItem("it-b", "alg-01"),
		bankItem("it-x", "ari-01"),
	})

	for i := 0; i < 5; i++ {
		it, ok := b.Pick("alg-01", nil)
		if !ok || it.ID != "it-a" {
			t.Fatalf("Pick() = %q, %t; want it-a, true", it.ID, ok)
		}
	}
}

func TestBankPickSkipsUsed(t *testing.T) {
	b := tempBank(t, []Item{
		bankItem("it-a", "alg-01"),
		bankItem("it-b", "alg-01"),
	})

	used := map[string]bool{"it-a": true}
	it, ok := b.Pick("alg-01", used)
	if !ok || it.ID != "it-b" {
		t.Fatalf("Pick() = %q, %t; want it-b, true", it.ID, ok)
	}

	used["it-b"] = true
	if _, ok := b.Pick("alg-01", used); ok {
		t.Error("Pick() with all items used = true, want false")
	}
}

func TestBankPickUnknownConcept(t *testing.T) {
	b := tempBank(t, []Item{bankItem("it-a", "alg-01")})
	if _, ok := b.Pick("geo-99", nil); ok {
		t.Error("Pick(unknown concept) = true, want false")
	}
}

func TestBankAddPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco_items.json")
	b, err := LoadBank(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Add(bankItem("it-a", "alg-01")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	reloaded, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank() after Add error: %v", err)
	}
	it, ok := reloaded.Pick("alg-01", nil)
	if !ok || it.ID != "it-a" {
		t.Errorf("reloaded Pick() = %q, %t; want it-a, true", it.ID, ok)
	}
}

func TestBankAddRejectsInvalid(t *testing.T) {
	b := tempBank(t, nil)
	bad := bankItem("it-a", "alg-01")
	bad.Answer = "not an option"
	if err := b.Add(bad); err == nil {
		t.Error("Add(invalid item) = nil error, want ValidationError")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after rejected Add, want 0", b.Len())
	}
}
