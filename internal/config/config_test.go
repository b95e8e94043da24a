package config

import (
	"strings"
	"testing"

	"github.com/cutonbuminband/rcounting-go/registry"
)

func TestLoadAliasesResolvesRegisteredNames(t *testing.T) {
	input := strings.NewReader("# comment\nAlice,alice_alt,AliceTwo\n\nBob,bobby\n")
	table, err := LoadAliases(input)
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if got := table.Resolve("alice_alt").Canonical; got != "Alice" {
		t.Errorf("Resolve(alice_alt) = %q, want Alice", got)
	}
	if got := table.Resolve("bobby").Canonical; got != "Bob" {
		t.Errorf("Resolve(bobby) = %q, want Bob", got)
	}
}

func TestLoadAliasesRejectsEmptyCanonical(t *testing.T) {
	input := strings.NewReader(",alt1\n")
	if _, err := LoadAliases(input); err == nil {
		t.Fatal("expected an error for a line with no canonical name")
	}
}

func TestLoadRegistryBindsThreadSection(t *testing.T) {
	ini := "[threads]\nabc123 = wait 2\ndef456 = base 16\n"
	reg := registry.New()
	if err := LoadRegistry(reg, strings.NewReader(ini)); err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if d := reg.Lookup("abc123"); d.Name != "wait 2" {
		t.Errorf("Lookup(abc123) = %q, want wait 2", d.Name)
	}
	if d := reg.Lookup("def456"); d.Name != "base 16" {
		t.Errorf("Lookup(def456) = %q, want base 16", d.Name)
	}
}
