package catalog

import "studio-quote/core/types"

// SongRange is the valid song count window for a project size
type SongRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// SongRangeFor returns the window for a size. EP tiers cover 3-5 songs and
// everything past EP (album, stem mastering) covers 6-20; single is pinned to 1.
func SongRangeFor(size types.ProjectSize) SongRange {
	switch size {
	case types.SizeSingle:
		return SongRange{Min: 1, Max: 1, Default: 1}
	case types.SizeEP, types.SizeEPAlbum:
		return SongRange{Min: 3, Max: 5, Default: 4}
	default:
		return SongRange{Min: 6, Max: 20, Default: 8}
	}
}

// Clamp returns n moved to the nearest bound of the range
func (r SongRange) Clamp(n int) int {
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}

// Contains reports whether n lies inside the range
func (r SongRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Fixed reports whether the range allows a single value only
func (r SongRange) Fixed() bool {
	return r.Min == r.Max
}
