package members

import (
	"slices"

	"github.com/rshade/adminui/internal/pagination"
)

// State owns the full set, the working set and the current page.
//
// The zero value is not usable; create one with NewState.
type State struct {
	full     []Record
	working  []Record
	query    string
	page     int
	pageSize int
}

// NewState returns an empty state showing pageSize records per page.
// A non-positive pageSize falls back to pagination.DefaultPageSize.
func NewState(pageSize int) *State {
	if pageSize < pagination.MinPageSize {
		pageSize = pagination.DefaultPageSize
	}
	return &State{page: pagination.MinPage, pageSize: pageSize}
}

// Load replaces both sets with records. No dedup or validation is performed;
// view flags are cleared and the page returns to 1.
func (s *State) Load(records []Record) Change {
	before := s.page

	full := make([]Record, len(records))
	for i, r := range records {
		r.IsSelected = false
		r.IsEditing = false
		full[i] = r
	}

	s.full = full
	s.working = slices.Clone(full)
	s.query = ""
	s.page = pagination.MinPage

	return s.change(ChangeLoad, before, true, nil)
}

// Search rebuilds the working set from the full set, keeping records whose
// field values contain term case-insensitively. An empty term restores the
// full set. The page always resets to 1. Edits and deletes made to the
// previous working set are discarded.
func (s *State) Search(term string) Change {
	before := s.page

	s.working = Filter(s.full, term)
	s.query = term
	s.page = pagination.MinPage

	return s.change(ChangeSearch, before, true, ids(s.working))
}

// SetField replaces the record with id by a copy with field set to value.
// A missing id is a no-op. An unsupported field returns ErrUnknownField.
func (s *State) SetField(id string, field Field, value string) (Change, error) {
	if _, err := (Record{}).With(field, value); err != nil {
		return s.change(ChangeSetField, s.page, false, nil), err
	}

	applied := s.replace(id, func(r Record) Record {
		updated, _ := r.With(field, value)
		return updated
	})
	return s.change(ChangeSetField, s.page, applied, hit(id, applied)), nil
}

// ToggleEditing sets the editing flag of the record with id.
func (s *State) ToggleEditing(id string, editing bool) Change {
	applied := s.replace(id, func(r Record) Record {
		r.IsEditing = editing
		return r
	})
	return s.change(ChangeEditing, s.page, applied, hit(id, applied))
}

// Save commits values onto the record with id and closes its editor. Like the
// save action of the table, it also clears the record's selection.
func (s *State) Save(id string, values map[Field]string) (Change, error) {
	for f := range values {
		if _, err := (Record{}).With(f, ""); err != nil {
			return s.change(ChangeSave, s.page, false, nil), err
		}
	}
	if s.index(id) < 0 {
		return s.change(ChangeSave, s.page, false, nil), nil
	}

	for f, v := range values {
		if _, err := s.SetField(id, f, v); err != nil {
			return s.change(ChangeSave, s.page, false, nil), err
		}
	}
	applied := s.replace(id, func(r Record) Record {
		r.IsEditing = false
		r.IsSelected = false
		return r
	})
	return s.change(ChangeSave, s.page, applied, hit(id, applied)), nil
}

// Delete removes the record with id from the working set. The full set is
// not touched.
func (s *State) Delete(id string) Change {
	before := s.page
	kept, removed := partition(s.working, func(r Record) bool { return r.ID == id })
	if len(removed) > 0 {
		s.working = kept
		s.clampPage()
	}
	return s.change(ChangeDelete, before, len(removed) > 0, removed)
}

// SelectAll sets the selection flag of every working set record.
func (s *State) SelectAll(flag bool) Change {
	s.working = mapRecords(s.working, func(r Record) Record {
		r.IsSelected = flag
		return r
	})
	return s.change(ChangeSelectAll, s.page, len(s.working) > 0, ids(s.working))
}

// SelectPage sets the selection flag of the records on the current page only.
func (s *State) SelectPage(flag bool) Change {
	start, end := pagination.Bounds(len(s.working), s.page, s.pageSize)
	working := slices.Clone(s.working)
	for i := start; i < end; i++ {
		working[i].IsSelected = flag
	}
	s.working = working
	return s.change(ChangeSelectAll, s.page, end > start, ids(working[start:end]))
}

// ToggleSelect flips the selection flag of the record with id.
func (s *State) ToggleSelect(id string) Change {
	applied := s.replace(id, func(r Record) Record {
		r.IsSelected = !r.IsSelected
		return r
	})
	return s.change(ChangeSelect, s.page, applied, hit(id, applied))
}

// DeleteSelected removes every selected record from the working set.
func (s *State) DeleteSelected() Change {
	before := s.page
	kept, removed := partition(s.working, func(r Record) bool { return r.IsSelected })
	if len(removed) > 0 {
		s.working = kept
		s.clampPage()
	}
	return s.change(ChangeDeleteSelected, before, len(removed) > 0, removed)
}

// GoTo moves to page, clamped into [1, PageCount()].
func (s *State) GoTo(page int) Change {
	before := s.page
	s.page = pagination.Clamp(page, s.PageCount())
	return s.change(ChangePage, before, s.page != before, nil)
}

// PrevPage moves back one page unless already on the first page.
func (s *State) PrevPage() Change {
	before := s.page
	page, moved := pagination.Prev(s.page)
	s.page = page
	return s.change(ChangePage, before, moved, nil)
}

// NextPage moves forward one page unless already on the last page.
func (s *State) NextPage() Change {
	before := s.page
	page, moved := pagination.Next(s.page, s.PageCount())
	s.page = page
	return s.change(ChangePage, before, moved, nil)
}

// Get returns the working set record with id.
func (s *State) Get(id string) (Record, bool) {
	i := s.index(id)
	if i < 0 {
		return Record{}, false
	}
	return s.working[i], true
}

// Full returns a copy of the full set.
func (s *State) Full() []Record { return slices.Clone(s.full) }

// Working returns a copy of the working set.
func (s *State) Working() []Record { return slices.Clone(s.working) }

// Window returns the records on the current page.
func (s *State) Window() []Record {
	return slices.Clone(pagination.WindowSlice(s.working, s.page, s.pageSize))
}

// Len returns the working set length.
func (s *State) Len() int { return len(s.working) }

// Query returns the last search term.
func (s *State) Query() string { return s.query }

// Page returns the current 1-based page.
func (s *State) Page() int { return s.page }

// PageSize returns the number of records per page.
func (s *State) PageSize() int { return s.pageSize }

// PageCount returns the number of pages of the working set, at least 1.
func (s *State) PageCount() int { return pagination.PageCount(len(s.working), s.pageSize) }

// Selected returns the ids of selected records in working set order.
func (s *State) Selected() []string {
	var out []string
	for _, r := range s.working {
		if r.IsSelected {
			out = append(out, r.ID)
		}
	}
	return out
}

// AllSelected reports whether the working set is non-empty and fully selected.
func (s *State) AllSelected() bool {
	if len(s.working) == 0 {
		return false
	}
	for _, r := range s.working {
		if !r.IsSelected {
			return false
		}
	}
	return true
}

// Editing returns the id of the first record with an open editor.
func (s *State) Editing() (string, bool) {
	for _, r := range s.working {
		if r.IsEditing {
			return r.ID, true
		}
	}
	return "", false
}

func (s *State) index(id string) int {
	return slices.IndexFunc(s.working, func(r Record) bool { return r.ID == id })
}

// replace swaps the record with id for fn(record) in a fresh working slice.
// Untouched records are copied unchanged.
func (s *State) replace(id string, fn func(Record) Record) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	working := slices.Clone(s.working)
	working[i] = fn(working[i])
	s.working = working
	return true
}

// clampPage keeps the page in range after the working set shrinks.
func (s *State) clampPage() {
	s.page = pagination.Clamp(s.page, s.PageCount())
}

func (s *State) change(kind ChangeKind, pageBefore int, applied bool, touched []string) Change {
	return Change{
		Kind:       kind,
		IDs:        touched,
		Applied:    applied,
		PageBefore: pageBefore,
		PageAfter:  s.page,
		Size:       len(s.working),
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func hit(id string, applied bool) []string {
	if !applied {
		return nil
	}
	return []string{id}
}

func mapRecords(records []Record, fn func(Record) Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = fn(r)
	}
	return out
}

// partition splits records into those kept and the ids of those removed.
//
//nolint:nonamedreturns // Named returns document which slice is which.
func partition(records []Record, remove func(Record) bool) (kept []Record, removed []string) {
	kept = make([]Record, 0, len(records))
	for _, r := range records {
		if remove(r) {
			removed = append(removed, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}
