package members

// ChangeKind identifies the operation that produced a Change.
type ChangeKind int

const (
	// ChangeLoad replaced both sets with freshly fetched records.
	ChangeLoad ChangeKind = iota
	// ChangeSearch rebuilt the working set from the full set.
	ChangeSearch
	// ChangeSetField replaced one field of one record.
	ChangeSetField
	// ChangeEditing set the editing flag of one record.
	ChangeEditing
	// ChangeSave committed edited values and closed the editor on one record.
	ChangeSave
	// ChangeDelete removed one record.
	ChangeDelete
	// ChangeSelect flipped the selection flag of one record.
	ChangeSelect
	// ChangeSelectAll set the selection flag of many records.
	ChangeSelectAll
	// ChangeDeleteSelected removed every selected record.
	ChangeDeleteSelected
	// ChangePage moved the current page.
	ChangePage
)

var changeKindNames = [...]string{ //nolint:gochecknoglobals // Lookup table for String.
	ChangeLoad:           "load",
	ChangeSearch:         "search",
	ChangeSetField:       "set_field",
	ChangeEditing:        "editing",
	ChangeSave:           "save",
	ChangeDelete:         "delete",
	ChangeSelect:         "select",
	ChangeSelectAll:      "select_all",
	ChangeDeleteSelected: "delete_selected",
	ChangePage:           "page",
}

// String returns the log name of the kind.
func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return "unknown"
	}
	return changeKindNames[k]
}

// Change describes the effect of one State operation.
type Change struct {
	Kind ChangeKind

	// IDs lists the records the operation touched, in working set order.
	IDs []string

	// Applied is false when the operation was a no-op, for example a lookup
	// miss or a page move blocked by a boundary.
	Applied bool

	// PageBefore and PageAfter bracket the current page. They differ when the
	// operation reset or clamped the page.
	PageBefore int
	PageAfter  int

	// Size is the working set length after the operation.
	Size int
}

// PageChanged reports whether the operation moved the current page.
func (c Change) PageChanged() bool {
	return c.PageBefore != c.PageAfter
}
