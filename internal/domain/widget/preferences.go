package widget

// Preferences is the open-ended per-widget configuration bag. The only
// structural contract is the shallow-merge rule: keys absent from an update
// are preserved from the prior value.
type Preferences map[string]any

// Merge combines the receiver with a proposed partial update. Keys present in
// proposed overwrite the same key in the receiver, keys absent from proposed
// are retained, and no other keys appear in the result. Nested objects are
// replaced whole, never merged recursively. The receiver is not modified.
func (p Preferences) Merge(proposed Preferences) Preferences {
	merged := make(Preferences, len(p)+len(proposed))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range proposed {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the preferences.
func (p Preferences) Clone() Preferences {
	if p == nil {
		return nil
	}
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// StringValue returns the string stored under key, if any.
func (p Preferences) StringValue(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
