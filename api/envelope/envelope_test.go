package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"studio-quote/core/types"
	"studio-quote/internal/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    RawInput
		size   types.ProjectSize
		songs  int
		addOns []types.AddOnKey
	}{
		{
			name:  "defaults size to single",
			raw:   RawInput{ServiceType: "mastering"},
			size:  types.SizeSingle,
			songs: 1,
		},
		{
			name:  "case-insensitive keys",
			raw:   RawInput{ServiceType: "Mastering", ProjectSize: "EPALBUM", SongCount: 4},
			size:  types.SizeEPAlbum,
			songs: 4,
		},
		{
			name:  "clamps songs into the size range",
			raw:   RawInput{ServiceType: "mixing", ProjectSize: "album", SongCount: 99},
			size:  types.SizeAlbum,
			songs: 20,
		},
		{
			name:   "dedupes add-ons",
			raw:    RawInput{ServiceType: "bundle", ProjectSize: "album", SongCount: 8, AddOns: []string{"DDP", "stems", "ddp", " "}},
			size:   types.SizeAlbum,
			songs:  8,
			addOns: []types.AddOnKey{types.AddOnStems, types.AddOnDDP},
		},
		{
			name:   "keeps unknown keys for pricing to degrade",
			raw:    RawInput{ServiceType: "mixing", ProjectSize: "Vinyl", SongCount: 0, AddOns: []string{"Cassette"}},
			size:   types.ProjectSize("vinyl"),
			songs:  6,
			addOns: []types.AddOnKey{"cassette"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Normalize(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.size, env.Selection.Size)
			assert.Equal(t, tt.songs, env.Selection.Songs)
			assert.ElementsMatch(t, tt.addOns, env.Selection.AddOns.Keys())
			assert.Len(t, env.InputHash, 64)
		})
	}
}

func TestNormalizeRejectsUnknownService(t *testing.T) {
	_, err := Normalize(RawInput{ServiceType: "podcast"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestInputHashIsCanonical(t *testing.T) {
	a, err := Normalize(RawInput{ServiceType: "bundle", ProjectSize: "album", SongCount: 8, AddOns: []string{"stems", "ddp"}})
	require.NoError(t, err)
	b, err := Normalize(RawInput{ServiceType: "BUNDLE", ProjectSize: "Album", SongCount: 8, AddOns: []string{"ddp", "Stems", "ddp"}})
	require.NoError(t, err)
	c, err := Normalize(RawInput{ServiceType: "bundle", ProjectSize: "album", SongCount: 9, AddOns: []string{"stems", "ddp"}})
	require.NoError(t, err)

	assert.Equal(t, a.InputHash, b.InputHash)
	assert.NotEqual(t, a.InputHash, c.InputHash)
	assert.Equal(t, a.InputHash[:12], a.ShortHash())
}

func TestAdjustmentsAreRecorded(t *testing.T) {
	env, err := Normalize(RawInput{ServiceType: "mixing", ProjectSize: "ep", SongCount: 9, AddOns: []string{"ddp", "ddp"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"song_count 9 clamped to 5",
		"duplicate add-on ddp dropped",
	}, env.Adjustments)
}

func TestUnknownSizeStillClampsSongs(t *testing.T) {
	env, err := Normalize(RawInput{ServiceType: "mixing", ProjectSize: "vinyl", SongCount: 1000000})
	require.NoError(t, err)
	assert.Equal(t, 20, env.Selection.Songs)
	assert.Equal(t, []string{"song_count 1000000 clamped to 20"}, env.Adjustments)
}

func TestZapAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewZapAuditLogger(zap.New(core))

	env, err := Normalize(RawInput{ServiceType: "mastering"})
	require.NoError(t, err)

	entry := NewAuditEntry(env, "req-1", "127.0.0.1", "test")
	entry.Total = "100"
	require.NoError(t, audit.Log(entry))

	failed := NewAuditEntry(env, "req-2", "", "")
	failed.MarkFailed(errors.New(errors.TypeInternal, "boom"))
	require.NoError(t, audit.Log(failed))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "quote", first.Message)
	assert.Equal(t, "req-1", first.ContextMap()["request_id"])
	assert.Equal(t, env.InputHash, first.ContextMap()["input_hash"])

	second := logs.All()[1]
	assert.Equal(t, zap.WarnLevel, second.Level)
	assert.Equal(t, "[INTERNAL_ERROR] boom", second.ContextMap()["error"])
}
