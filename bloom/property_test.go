package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var itemGen = rapid.SliceOfN(rapid.Byte(), 32, 32)

func drawItems(t *rapid.T, label string, max int) [][]byte {
	return rapid.SliceOfN(itemGen, 0, max).Draw(t, label).([][]byte)
}

func drawFamily(t *rapid.T) *Family {
	kind := rapid.SampledFrom([]FamilyKind{FamilyMurmur3, FamilySipHash, FamilySHA256}).Draw(t, "kind").(FamilyKind)
	family, err := NewFamily(kind, 256, 4, 32)
	require.NoError(t, err)
	return family
}

func build(t *rapid.T, family *Family, items [][]byte) *Filter {
	f := New(family)
	for _, item := range items {
		require.NoError(t, f.Insert(item))
	}
	return f
}

func contains(t *rapid.T, f *Filter, item []byte) bool {
	ok, err := f.MayContain(item)
	require.NoError(t, err)
	return ok
}

// subset reports whether every bit of a is also set in b.
func subset(a, b []byte) bool {
	for i := range a {
		if a[i]&b[i] != a[i] {
			return false
		}
	}
	return true
}

func TestPropertyNoFalseNegativesAndMonotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		family := drawFamily(t)
		items := drawItems(t, "items", 60)

		f := New(family)
		prev := f.Bytes()
		for n, item := range items {
			require.NoError(t, f.Insert(item))

			cur := f.Bytes()
			require.True(t, subset(prev, cur))
			prev = cur

			for _, inserted := range items[:n+1] {
				require.True(t, contains(t, f, inserted))
			}
		}

		// Merging more state in never loses an item.
		other := build(t, family, drawItems(t, "more", 20))
		require.NoError(t, f.Merge(other))
		require.True(t, subset(prev, f.Bytes()))
		for _, item := range items {
			require.True(t, contains(t, f, item))
		}
	})
}

func TestPropertyMergeSoundness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		family := drawFamily(t)
		a := build(t, family, drawItems(t, "a", 30))
		b := build(t, family, drawItems(t, "b", 30))

		ab, err := Union(a, b)
		require.NoError(t, err)

		for _, q := range drawItems(t, "queries", 50) {
			require.Equal(t, contains(t, a, q) || contains(t, b, q), contains(t, ab, q))
		}
	})
}

func TestPropertyMergeAlgebra(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		family := drawFamily(t)
		a := build(t, family, drawItems(t, "a", 20))
		b := build(t, family, drawItems(t, "b", 20))
		c := build(t, family, drawItems(t, "c", 20))

		union := func(x, y *Filter) *Filter {
			u, err := Union(x, y)
			require.NoError(t, err)
			return u
		}

		require.True(t, union(a, b).Equal(union(b, a)))
		require.True(t, union(union(a, b), c).Equal(union(a, union(b, c))))
		require.True(t, union(a, New(family)).Equal(a))
		require.True(t, union(a, a).Equal(a))
	})
}

func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		family := drawFamily(t)
		f := build(t, family, drawItems(t, "items", 80))

		g, err := Decode(family, f.Bytes())
		require.NoError(t, err)
		require.True(t, f.Equal(g))
		require.Equal(t, f.Bytes(), g.Bytes())
	})
}

func TestPropertyOrderIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		family := drawFamily(t)
		items := drawItems(t, "items", 40)

		// Duplicate a few items so the input is a multiset.
		if len(items) > 0 {
			items = append(items, items[0], items[len(items)/2])
		}

		shuffled := append([][]byte(nil), items...)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(t, "swap").(int)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}

		require.True(t, build(t, family, items).Equal(build(t, family, shuffled)))
	})
}
