// Package chrom builds the unified chromosome name-to-id map shared by the
// DB and query record streams.
package chrom

import "fmt"

// aliasPairs is the fixed rewrite table: every bare numeric/mitochondrial
// name on the left resolves to the same id as its "chr"-prefixed form on
// the right. No fuzzy matching is attempted beyond this table.
var aliasPairs = buildAliasPairs()

func buildAliasPairs() [][2]string {
	pairs := make([][2]string, 0, 26)
	for i := 1; i <= 22; i++ {
		bare := fmt.Sprintf("%d", i)
		pairs = append(pairs, [2]string{bare, "chr" + bare})
	}
	pairs = append(pairs,
		[2]string{"X", "chrX"},
		[2]string{"Y", "chrY"},
		[2]string{"M", "chrM"},
		[2]string{"MT", "chrMT"},
	)
	return pairs
}

// Reconciler owns the single name -> id map unifying the DB and query
// sequence dictionaries. Populated eagerly by scanning both headers before
// any record is decoded.
type Reconciler struct {
	ids   map[string]int32
	names []string
}

// New returns an empty Reconciler.
func New() *Reconciler {
	return &Reconciler{ids: make(map[string]int32)}
}

// ScanHeader assigns a fresh id to every name not already known. Call once
// per header (DB first, then query), before AddAliases.
func (r *Reconciler) ScanHeader(names []string) {
	for _, name := range names {
		if _, ok := r.ids[name]; ok {
			continue
		}
		r.ids[name] = int32(len(r.ids))
		r.names = append(r.names, name)
	}
}

// Name returns the first-seen spelling assigned to id, the canonical form
// used when rendering chromosome names back out in reports.
func (r *Reconciler) Name(id int32) string {
	if id < 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// AddAliases extends the map with the fixed alias table: whichever of a
// pair's two spellings was already seen lends its id to the other. When both
// spellings were independently scanned (the normal DB-vs-query mismatch, e.g.
// DB header "1" and query header "chr1"), the two ids they were assigned are
// merged into one. Call once, after both headers have been scanned.
func (r *Reconciler) AddAliases() {
	for _, pair := range aliasPairs {
		bare, prefixed := pair[0], pair[1]
		bareID, bareOK := r.ids[bare]
		prefixedID, prefixedOK := r.ids[prefixed]
		switch {
		case bareOK && !prefixedOK:
			r.ids[prefixed] = bareID
		case prefixedOK && !bareOK:
			r.ids[bare] = prefixedID
		case bareOK && prefixedOK && bareID != prefixedID:
			r.merge(bareID, prefixedID)
		}
	}
}

// merge repoints every name currently mapped to lose onto keep, the lower of
// the two ids, so the spelling scanned first stays canonical.
func (r *Reconciler) merge(a, b int32) {
	keep, lose := a, b
	if lose < keep {
		keep, lose = lose, keep
	}
	for name, id := range r.ids {
		if id == lose {
			r.ids[name] = keep
		}
	}
}

// Lookup resolves a chromosome name to its unified id. ok is false for
// names absent from both headers and the alias table; the caller (§7) skips
// the record rather than guessing.
func (r *Reconciler) Lookup(name string) (int32, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Len reports how many distinct ids have been assigned.
func (r *Reconciler) Len() int {
	distinct := make(map[int32]struct{}, len(r.ids))
	for _, id := range r.ids {
		distinct[id] = struct{}{}
	}
	return len(distinct)
}

// TempMap assigns sequential placeholder ids to names seen only as a
// record's secondary breakpoint chromosome (CHR2), deferring translation to
// the unified id space until the ingest pass over the primary chromosome
// column has finished seeding the Reconciler. Mirrors the chr2Map idiom of
// the original ingest loop.
type TempMap struct {
	ids   map[string]int32
	order []string
}

// NewTempMap returns an empty TempMap.
func NewTempMap() *TempMap {
	return &TempMap{ids: make(map[string]int32)}
}

// IDFor returns the temporary id for name, assigning the next sequential
// one (in first-seen order) if this is the first time name is requested.
func (t *TempMap) IDFor(name string) int32 {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := int32(len(t.order))
	t.ids[name] = id
	t.order = append(t.order, name)
	return id
}

// Resolve produces the temp-id -> final-id translation table once the
// Reconciler has seen every chromosome name. A name with no entry in r
// resolves to -1; dbingest keeps such SVs with Chr2 = -1, an id no query SV
// can carry, so they never match rather than being silently mismatched.
func (t *TempMap) Resolve(r *Reconciler) map[int32]int32 {
	out := make(map[int32]int32, len(t.order))
	for name, tempID := range t.ids {
		if finalID, ok := r.Lookup(name); ok {
			out[tempID] = finalID
		} else {
			out[tempID] = -1
		}
	}
	return out
}
