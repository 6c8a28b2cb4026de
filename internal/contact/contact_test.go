package contact

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIncrementingIDs(t *testing.T) {
	gen := IncrementingIDs()
	require.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000000"), gen())
	require.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000001"), gen())
	require.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000002"), gen())
}

func TestIndexOf(t *testing.T) {
	gen := IncrementingIDs()
	a, b := Contact{ID: gen(), Name: "A"}, Contact{ID: gen(), Name: "B"}
	list := []Contact{a, b}
	require.Equal(t, 1, IndexOf(list, b.ID))
	require.Equal(t, -1, IndexOf(list, gen()))
	require.Equal(t, -1, IndexOf(nil, a.ID))
}

func TestSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, Similarity("Blob", "blob"), 1e-9)
	require.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	require.InDelta(t, 0.75, Similarity("Blob", "Blab"), 1e-9)
	require.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	// composed and decomposed forms compare equal
	require.InDelta(t, 1.0, Similarity("Ren\u00e9", "Rene\u0301"), 1e-9)
}

func TestSimilarNames(t *testing.T) {
	gen := IncrementingIDs()
	blob := Contact{ID: gen(), Name: "Blob"}
	jr := Contact{ID: gen(), Name: "Blob Jr"}
	other := Contact{ID: gen(), Name: "Alice"}
	list := []Contact{blob, jr, other}

	require.Equal(t, []Contact{blob}, SimilarNames(list, "Blab", 0.75, uuid.Nil))
	require.Empty(t, SimilarNames(list, "  ", 0.1, uuid.Nil))
	require.Empty(t, SimilarNames(list, "Blob", 0.9, blob.ID))
}
