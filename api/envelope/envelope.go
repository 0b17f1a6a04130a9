// Package envelope - Input normalization for quote requests.
// Handlers never price raw input; they price the canonical selection held
// in an envelope, which also carries the hash that identifies it.
package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studio-quote/core/catalog"
	"studio-quote/core/estimator"
	"studio-quote/core/types"
)

// RawInput is a quote request as received
type RawInput struct {
	ServiceType string
	ProjectSize string
	SongCount   int
	AddOns      []string
}

// InputEnvelope is the normalized, hashed form of a quote request
type InputEnvelope struct {
	Selection estimator.Selection `json:"selection"`

	// Adjustments lists every change normalization made to the raw input
	Adjustments []string `json:"adjustments,omitempty"`

	InputHash    string    `json:"input_hash"`
	NormalizedAt time.Time `json:"normalized_at"`
}

// Normalize builds the canonical selection for raw. The service must be known;
// sizes and add-ons the catalog does not recognize are kept so pricing can
// degrade them with a warning.
func Normalize(raw RawInput) (*InputEnvelope, error) {
	service, err := types.ParseServiceType(raw.ServiceType)
	if err != nil {
		return nil, err
	}

	env := &InputEnvelope{NormalizedAt: time.Now().UTC()}

	size := normalizeSize(raw.ProjectSize)
	if size == "" {
		size = types.SizeSingle
		env.adjust("project_size defaulted to %s", size)
	}

	songs := catalog.SongRangeFor(size).Clamp(raw.SongCount)
	if songs != raw.SongCount && raw.SongCount != 0 {
		env.adjust("song_count %d clamped to %d", raw.SongCount, songs)
	}

	addOns := estimator.NewAddOnSet()
	for _, a := range raw.AddOns {
		key := normalizeAddOn(a)
		if key == "" {
			continue
		}
		if addOns.Has(key) {
			env.adjust("duplicate add-on %s dropped", key)
			continue
		}
		addOns.Toggle(key)
	}

	env.Selection = estimator.Selection{
		Service: service,
		Size:    size,
		Songs:   songs,
		AddOns:  addOns,
	}
	env.InputHash = computeInputHash(env.Selection)
	return env, nil
}

func (e *InputEnvelope) adjust(format string, args ...interface{}) {
	e.Adjustments = append(e.Adjustments, fmt.Sprintf(format, args...))
}

// normalizeSize maps a size to its canonical key regardless of case.
// Unrecognized sizes come back trimmed and lower-cased.
func normalizeSize(s string) types.ProjectSize {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if size, err := types.ParseProjectSize(s); err == nil {
		return size
	}
	return types.ProjectSize(strings.ToLower(s))
}

func normalizeAddOn(s string) types.AddOnKey {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if key, err := types.ParseAddOnKey(s); err == nil {
		return key
	}
	return types.AddOnKey(strings.ToLower(s))
}

func computeInputHash(sel estimator.Selection) string {
	// AddOnSet marshals in a stable order
	data, _ := json.Marshal(sel)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash returns the first 12 characters of the hash
func (e *InputEnvelope) ShortHash() string {
	if len(e.InputHash) >= 12 {
		return e.InputHash[:12]
	}
	return e.InputHash
}
