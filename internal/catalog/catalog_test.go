package catalog

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFn(_, _ []float64) (Payload, error) {
	return Scalar(1), nil
}

func init() {
	Register("catalog_test_fn", testFn)
	Register("catalog_test_fn2", testFn)
}

func TestPayloadConstructors(t *testing.T) {
	t.Parallel()

	t.Run("scalar", func(t *testing.T) {
		t.Parallel()
		p := Scalar(2.5)
		assert.Nil(t, p.Fields)
		assert.Equal(t, complex(2.5, 0), p.Value)
	})

	t.Run("fields preserve NaN", func(t *testing.T) {
		t.Parallel()
		p := Fields(map[string]float64{"a": 1, "b": math.NaN()})
		require.NotNil(t, p.Fields)
		assert.Equal(t, complex(1, 0), p.Fields["a"])
		assert.True(t, math.IsNaN(real(p.Fields["b"])))
	})

	t.Run("complex scalar", func(t *testing.T) {
		t.Parallel()
		p := ComplexScalar(complex(1, 2))
		assert.Equal(t, complex(1, 2), p.Value)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("lookup registered function", func(t *testing.T) {
		t.Parallel()
		fn, ok := LookupFunc("catalog_test_fn")
		require.True(t, ok)
		p, err := fn(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, complex(1, 0), p.Value)
	})

	t.Run("lookup unknown function", func(t *testing.T) {
		t.Parallel()
		_, ok := LookupFunc("no_such_function")
		assert.False(t, ok)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			Register("catalog_test_fn", testFn)
		})
	})

	t.Run("registered names are sorted", func(t *testing.T) {
		t.Parallel()
		names := RegisteredNames()
		assert.Contains(t, names, "catalog_test_fn")
		for i := 1; i < len(names); i++ {
			assert.LessOrEqual(t, names[i-1], names[i])
		}
	})
}

func TestStore(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T) *Store {
		t.Helper()
		s, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	}

	masters := []MasterOperation{
		{ID: 1, Label: "First", FuncName: "catalog_test_fn"},
		{ID: 2, Label: "Second", FuncName: "catalog_test_fn2"},
	}
	ops := []Operation{
		{ID: 10, Name: "first_a", MasterID: 1, Field: "a"},
		{ID: 11, Name: "first_direct", MasterID: 1, Field: ""},
		{ID: 12, Name: "second_b", MasterID: 2, Field: "b"},
	}

	t.Run("seed and load round trip", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		require.NoError(t, s.Seed(masters, ops))

		gotMasters, err := s.LoadMasterOperations()
		require.NoError(t, err)
		require.Len(t, gotMasters, 2)
		assert.Equal(t, "First", gotMasters[0].Label)
		assert.NotNil(t, gotMasters[0].Fn, "loaded master must be linked")

		gotOps, err := s.LoadOperations()
		require.NoError(t, err)
		require.Len(t, gotOps, 3)
		assert.Equal(t, "first_a", gotOps[0].Name)
		assert.Equal(t, int64(1), gotOps[0].MasterID)
		assert.Equal(t, "", gotOps[1].Field)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		require.NoError(t, s.Seed(masters, ops))
		require.NoError(t, s.Seed(masters, ops))

		gotOps, err := s.LoadOperations()
		require.NoError(t, err)
		assert.Len(t, gotOps, 3)
	})

	t.Run("unregistered function fails load", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		bad := []MasterOperation{{ID: 9, Label: "Ghost", FuncName: "not_registered"}}
		require.NoError(t, s.Seed(bad, nil))

		_, err := s.LoadMasterOperations()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not_registered")
	})

	t.Run("master without function name cannot be seeded", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		err := s.Seed([]MasterOperation{{ID: 3, Label: "anon"}}, nil)
		assert.Error(t, err)
	})
}
