// File: internal/normalize/normalize.go
// Coerces heterogeneous provider payloads into the canonical shapes the rest
// of the pipeline consumes. Everything in here is a pure transformation:
// no I/O, no errors, no panics regardless of input shape.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

// nameKeys are the object keys, in priority order, that breach providers use
// for the breached source's name.
var nameKeys = []string{"name", "source", "title", "site"}

// NormalizeBreaches converts an arbitrary breach-provider payload into a flat
// list of BreachRecords. Accepted shapes: nil, a list of strings, a list of
// objects with a name-like key, or a list of anything else (stringified
// deterministically). Provider order is preserved and duplicates are kept;
// downstream counting operates on the full list.
func NormalizeBreaches(raw any) []schemas.BreachRecord {
	records := []schemas.BreachRecord{}
	if raw == nil {
		return records
	}

	switch list := raw.(type) {
	case []string:
		for _, s := range list {
			records = append(records, schemas.BreachRecord{SourceID: s, RawLabel: s})
		}
	case []any:
		for _, elem := range list {
			records = append(records, normalizeBreachEntry(elem))
		}
	case []map[string]any:
		for _, elem := range list {
			records = append(records, normalizeBreachEntry(elem))
		}
	}
	// Anything that is not a recognizable list degrades to "no breaches".
	return records
}

// normalizeBreachEntry handles one element via type dispatch: string, keyed
// object, or arbitrary value.
func normalizeBreachEntry(elem any) schemas.BreachRecord {
	switch v := elem.(type) {
	case string:
		return schemas.BreachRecord{SourceID: v, RawLabel: v}
	case map[string]any:
		for _, key := range nameKeys {
			if name, ok := v[key].(string); ok && name != "" {
				return schemas.BreachRecord{SourceID: name, RawLabel: name}
			}
		}
		label := stringify(v)
		return schemas.BreachRecord{SourceID: label, RawLabel: label}
	default:
		label := stringify(v)
		return schemas.BreachRecord{SourceID: label, RawLabel: label}
	}
}

// stringify produces a stable serialization for payload shapes we do not
// recognize. encoding/json sorts map keys, which keeps the output
// deterministic across calls.
func stringify(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// NormalizeProfile maps a provider-neutral profile payload into the canonical
// snapshot. A nil payload is the "profile not found" case and yields the
// zeroed snapshot with Found=false. Negative counters from a misbehaving
// provider are clamped to zero.
func NormalizeProfile(raw *schemas.ProfilePayload) schemas.ProfileSnapshot {
	if raw == nil {
		return schemas.ProfileSnapshot{Found: false}
	}

	snap := schemas.ProfileSnapshot{
		Found:           true,
		FollowerCount:   max(0, raw.Followers),
		PublicRepoCount: max(0, raw.PublicRepos),
		CreatedAt:       raw.CreatedAt,
	}
	if bio := strings.TrimSpace(raw.Bio); bio != "" {
		snap.Bio = &bio
	}
	if loc := strings.TrimSpace(raw.Location); loc != "" {
		snap.Location = &loc
	}
	if url := strings.TrimSpace(raw.HTMLURL); url != "" {
		snap.ProfileURL = &url
	}
	return snap
}
