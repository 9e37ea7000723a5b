package upstream

import (
	"encoding/json"
	"sort"

	"github.com/qiaoguanyu11/actorreal/internal/api/metrics"
)

// Variant names the response shape a listing was decoded from. The backend's
// list endpoints disagree on shape across revisions; the decoder is a
// tagged union with one variant per known shape so callers can tell a
// guaranteed contract from a best-effort guess.
type Variant string

const (
	// VariantArray: the body is itself the entity list.
	VariantArray Variant = "array"
	// VariantItemsTotal: the body is {items: [...], total: n}.
	VariantItemsTotal Variant = "items_total"
	// VariantLegacyScan is the best-effort legacy shape: the entity list was
	// found by scanning the body for the array that looks most like
	// entities. Never rely on it as a contract.
	VariantLegacyScan Variant = "legacy_scan"
)

// Page is the uniform list-with-total shape every response normalizes to.
type Page struct {
	Items   []json.RawMessage
	Total   int
	Variant Variant
}

type itemsEnvelope struct {
	Items []json.RawMessage `json:"items"`
	Total *int              `json:"total"`
}

// DecodePage normalizes an arbitrary successful list response body.
// Detection order: bare array, then {items,total} envelope, then the legacy
// scan. Idempotent on already-normalized input: an {items,total} body
// decodes to the same items and total.
func DecodePage(body []byte) Page {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		metrics.ListShapeTotal.WithLabelValues(string(VariantArray)).Inc()
		return Page{Items: items, Total: len(items), Variant: VariantArray}
	}

	var env itemsEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Items != nil {
		total := len(env.Items)
		if env.Total != nil {
			total = *env.Total
		}
		metrics.ListShapeTotal.WithLabelValues(string(VariantItemsTotal)).Inc()
		return Page{Items: env.Items, Total: total, Variant: VariantItemsTotal}
	}

	metrics.ListShapeTotal.WithLabelValues(string(VariantLegacyScan)).Inc()
	return scanForEntities(body)
}

// scanForEntities walks the body's own fields and one level of nested
// objects, scoring every array by whether its first element carries an
// id-like and a name-like field, and picks the highest-scoring candidate.
func scanForEntities(body []byte) Page {
	page := Page{Variant: VariantLegacyScan}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return page
	}

	type candidate struct {
		key   string
		depth int
		items []json.RawMessage
		score int
	}
	var candidates []candidate

	collect := func(key string, depth int, raw json.RawMessage) {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return
		}
		candidates = append(candidates, candidate{key: key, depth: depth, items: arr, score: entityScore(arr)})
	}

	// Deterministic order: map iteration is randomized.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		collect(k, 0, fields[k])

		var nested map[string]json.RawMessage
		if err := json.Unmarshal(fields[k], &nested); err != nil {
			continue
		}
		nestedKeys := make([]string, 0, len(nested))
		for nk := range nested {
			nestedKeys = append(nestedKeys, nk)
		}
		sort.Strings(nestedKeys)
		for _, nk := range nestedKeys {
			collect(k+"."+nk, 1, nested[nk])
		}
	}

	best := -1
	for i, c := range candidates {
		if c.score == 0 {
			continue
		}
		if best == -1 || c.score > candidates[best].score ||
			(c.score == candidates[best].score && c.depth < candidates[best].depth) {
			best = i
		}
	}
	if best == -1 {
		return page
	}

	chosen := candidates[best]
	page.Items = chosen.items
	page.Total = len(chosen.items)
	return page
}

var (
	idLikeKeys   = []string{"id", "actor_id", "uuid"}
	nameLikeKeys = []string{"name", "real_name", "stage_name", "username", "title"}
)

// entityScore rates how much an array's first element looks like an entity.
func entityScore(arr []json.RawMessage) int {
	if len(arr) == 0 {
		return 0
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(arr[0], &first); err != nil {
		return 0
	}

	score := 0
	for _, k := range idLikeKeys {
		if _, ok := first[k]; ok {
			score++
			break
		}
	}
	for _, k := range nameLikeKeys {
		if _, ok := first[k]; ok {
			score++
			break
		}
	}
	return score
}
