package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

func constantMaster(v float64) catalog.MasterFunc {
	return func(_, _ []float64) (catalog.Payload, error) {
		return catalog.Scalar(v), nil
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	masters := []catalog.MasterOperation{
		{ID: 10, Label: "ten", Fn: constantMaster(10)},
		{ID: 20, Label: "twenty", Fn: constantMaster(20)},
		{ID: 30, Label: "thirty", Fn: constantMaster(30)},
	}

	t.Run("collapses duplicates and maps indices", func(t *testing.T) {
		t.Parallel()
		ops := []catalog.Operation{
			{ID: 1, MasterID: 20},
			{ID: 2, MasterID: 10},
			{ID: 3, MasterID: 20},
			{ID: 4, MasterID: 10},
			{ID: 5, MasterID: 20},
		}

		p, err := resolve(ops, masters)
		require.NoError(t, err)

		// Distinct masters in first-reference order: 20 then 10.
		require.Len(t, p.masters, 2)
		assert.Equal(t, int64(20), p.masters[0].ID)
		assert.Equal(t, int64(10), p.masters[1].ID)
		assert.Equal(t, []int{0, 1, 0, 1, 0}, p.index)
	})

	t.Run("unused masters are not scheduled", func(t *testing.T) {
		t.Parallel()
		ops := []catalog.Operation{{ID: 1, MasterID: 30}}
		p, err := resolve(ops, masters)
		require.NoError(t, err)
		require.Len(t, p.masters, 1)
		assert.Equal(t, int64(30), p.masters[0].ID)
	})

	t.Run("dangling reference is catalog corruption", func(t *testing.T) {
		t.Parallel()
		ops := []catalog.Operation{{ID: 7, MasterID: 99}}
		_, err := resolve(ops, masters)

		var corrupt *CatalogCorruptError
		require.ErrorAs(t, err, &corrupt)
		assert.Equal(t, int64(7), corrupt.OperationID)
		assert.Equal(t, int64(99), corrupt.MasterID)
	})

	t.Run("unlinked operation is catalog corruption", func(t *testing.T) {
		t.Parallel()
		ops := []catalog.Operation{{ID: 8, MasterID: 0}}
		_, err := resolve(ops, masters)

		var corrupt *CatalogCorruptError
		require.ErrorAs(t, err, &corrupt)
		assert.Equal(t, int64(8), corrupt.OperationID)
	})

	t.Run("empty operation list resolves to empty plan", func(t *testing.T) {
		t.Parallel()
		p, err := resolve(nil, masters)
		require.NoError(t, err)
		assert.Empty(t, p.masters)
		assert.Empty(t, p.index)
	})
}
