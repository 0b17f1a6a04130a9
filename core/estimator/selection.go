package estimator

import (
	"encoding/json"
	"sort"

	"studio-quote/core/types"
)

// Selection is the visitor's transient choice of service, size, song count and add-ons
type Selection struct {
	Service types.ServiceType `json:"service_type"`
	Size    types.ProjectSize `json:"project_size"`
	Songs   int               `json:"song_count"`
	AddOns  AddOnSet          `json:"add_ons"`
}

// DefaultSelection is the state an estimator starts in: a single mastered song
func DefaultSelection() Selection {
	return Selection{
		Service: types.ServiceMastering,
		Size:    types.SizeSingle,
		Songs:   1,
		AddOns:  NewAddOnSet(),
	}
}

// Clone returns a deep copy
func (s Selection) Clone() Selection {
	s.AddOns = s.AddOns.Clone()
	return s
}

// AddOnSet is a membership set of add-on keys. Order carries no meaning.
type AddOnSet map[types.AddOnKey]struct{}

// NewAddOnSet creates a set holding keys
func NewAddOnSet(keys ...types.AddOnKey) AddOnSet {
	s := make(AddOnSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports membership
func (s AddOnSet) Has(key types.AddOnKey) bool {
	_, ok := s[key]
	return ok
}

// Toggle adds key if absent and removes it if present. It reports whether key is now selected.
// A nil set is allocated on first use.
func (s *AddOnSet) Toggle(key types.AddOnKey) bool {
	if s.Has(key) {
		delete(*s, key)
		return false
	}
	if *s == nil {
		*s = make(AddOnSet)
	}
	(*s)[key] = struct{}{}
	return true
}

// Len returns the number of selected add-ons
func (s AddOnSet) Len() int {
	return len(s)
}

// Clone returns a copy of the set
func (s AddOnSet) Clone() AddOnSet {
	out := make(AddOnSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Keys returns members in catalog display order; unknown keys follow, sorted
func (s AddOnSet) Keys() []types.AddOnKey {
	keys := make([]types.AddOnKey, 0, len(s))
	for _, k := range types.AddOnKeys {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	var unknown []types.AddOnKey
	for k := range s {
		if !k.IsValid() {
			unknown = append(unknown, k)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(keys, unknown...)
}

// MarshalJSON renders the set as a stable array
func (s AddOnSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON reads an array, dropping duplicates
func (s *AddOnSet) UnmarshalJSON(data []byte) error {
	var keys []types.AddOnKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewAddOnSet(keys...)
	return nil
}
