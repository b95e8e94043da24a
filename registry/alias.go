package registry

import "strings"

// Alias is one entry of the alias table (spec §3's "Alias table": a
// mapping username -> canonical-username), extended per SUPPLEMENTED
// FEATURE 6 with moderator/banned flags so the aggregator can exclude
// banned counters while still tabulating mods distinctly. Grounded on
// counters.py's is_mod/is_ignored_counter and io.py's
// update_counters_table is_banned handling.
type Alias struct {
	Canonical string
	IsMod     bool
	IsBanned  bool
}

// AliasTable maps a username to its canonical equivalence class. A user
// not present in the table maps to itself (spec §3: "Identity mapping
// for unregistered users").
type AliasTable struct {
	byUsername map[string]*Alias
}

func NewAliasTable() *AliasTable {
	return &AliasTable{byUsername: make(map[string]*Alias)}
}

// Register adds alias as every name in names' canonical resolution,
// mirroring the alias file's `canonical,alias1,alias2,...` line format
// (spec §6): the canonical username itself is always included so
// Resolve(canonical) also returns canonical.
func (t *AliasTable) Register(canonical string, names ...string) {
	a := &Alias{Canonical: canonical}
	t.byUsername[strings.ToLower(canonical)] = a
	for _, n := range names {
		t.byUsername[strings.ToLower(n)] = a
	}
}

// SetFlags marks the given (already-resolved) username as a moderator
// and/or banned counter.
func (t *AliasTable) SetFlags(username string, isMod, isBanned bool) {
	key := strings.ToLower(username)
	a, ok := t.byUsername[key]
	if !ok {
		a = &Alias{Canonical: username}
		t.byUsername[key] = a
	}
	a.IsMod = isMod
	a.IsBanned = isBanned
}

// Resolve returns the canonical username for username, and its flags.
// Unregistered usernames resolve to themselves with no flags set.
func (t *AliasTable) Resolve(username string) Alias {
	if a, ok := t.byUsername[strings.ToLower(username)]; ok {
		return *a
	}
	return Alias{Canonical: username}
}
