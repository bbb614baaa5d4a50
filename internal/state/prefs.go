package state

import "encoding/json"

// SavePrefs merges a partial preference patch into a view's stored blob.
// Merge, not overwrite: a view saving {viewMode} and later {filters} ends up
// with one blob holding both. Fields are shallow-merged by top-level key.
func (s *Store) SavePrefs(view string, patch map[string]any) {
	if view == "" || len(patch) == 0 {
		return
	}
	blob := s.Prefs(view)
	if blob == nil {
		blob = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		blob[k] = v
	}
	s.put(bucketPrefs, view, blob)
}

// Prefs returns a view's stored preference blob, or nil when nothing usable
// is stored.
func (s *Store) Prefs(view string) map[string]any {
	var blob map[string]any
	if !s.get(bucketPrefs, view, &blob) {
		return nil
	}
	return blob
}

// DecodePref extracts one typed field from a preference blob. The zero value
// and false are returned when the field is absent or does not decode.
func DecodePref[T any](prefs map[string]any, key string) (T, bool) {
	var out T
	raw, ok := prefs[key]
	if !ok {
		return out, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}
