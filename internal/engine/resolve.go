package engine

import "github.com/tsfeat/tsfeat/internal/catalog"

// plan is the resolved execution plan for one run: the distinct masters to
// evaluate, in first-reference order, and for every operation the index of
// its master in that list. The index map lets the operation phase address
// master results without re-searching the catalog.
type plan struct {
	masters []catalog.MasterOperation
	index   []int
}

// resolve computes the minimal distinct master set referenced by ops and
// the operation→master index map. Fails with *CatalogCorruptError on an
// unlinked operation (master ID 0) or a reference with no catalog match.
func resolve(ops []catalog.Operation, masters []catalog.MasterOperation) (*plan, error) {
	byID := make(map[int64]catalog.MasterOperation, len(masters))
	for _, m := range masters {
		byID[m.ID] = m
	}

	p := &plan{index: make([]int, len(ops))}
	seen := make(map[int64]int)

	for i, op := range ops {
		if op.MasterID == 0 {
			return nil, &CatalogCorruptError{OperationID: op.ID}
		}
		if at, ok := seen[op.MasterID]; ok {
			p.index[i] = at
			continue
		}
		m, ok := byID[op.MasterID]
		if !ok {
			return nil, &CatalogCorruptError{OperationID: op.ID, MasterID: op.MasterID}
		}
		seen[op.MasterID] = len(p.masters)
		p.index[i] = len(p.masters)
		p.masters = append(p.masters, m)
	}

	return p, nil
}
