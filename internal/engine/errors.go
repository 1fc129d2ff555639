package engine

import "fmt"

// CatalogCorruptError reports an operation whose master reference cannot be
// resolved: either the master ID is absent from the catalog or the
// operation was never linked (master ID 0). This is a build-time catalog
// defect and aborts the whole run; it is never scored as a bad value.
type CatalogCorruptError struct {
	OperationID int64
	MasterID    int64
}

func (e *CatalogCorruptError) Error() string {
	if e.MasterID == 0 {
		return fmt.Sprintf("catalog corrupt: operation %d is unlinked (master ID 0)", e.OperationID)
	}
	return fmt.Sprintf("catalog corrupt: operation %d references missing master %d", e.OperationID, e.MasterID)
}

// FieldMissingError reports an operation whose extraction field is absent
// from its master's successful payload. Contained to the single operation:
// logged and scored as a retrieval failure, never propagated.
type FieldMissingError struct {
	OperationID int64
	Field       string
	MasterLabel string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("operation %d: field %q not in output of master %q", e.OperationID, e.Field, e.MasterLabel)
}
