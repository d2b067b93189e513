package members

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		id := strconv.Itoa(i + 1)
		records[i] = Record{
			ID:    id,
			Name:  "Member " + id,
			Email: fmt.Sprintf("member%s@example.com", id),
			Role:  "member",
		}
	}
	return records
}

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: "2", Name: "Aishwarya Naik", Email: "aishwarya@mailinator.com", Role: "member"},
		{ID: "3", Name: "Arvind Kumar", Email: "arvind@mailinator.com", Role: "admin"},
		{ID: "4", Name: "Caterina Binotto", Email: "caterina@mailinator.com", Role: "member"},
		{ID: "5", Name: "Émile Zola", Email: "emile@mailinator.com", Role: "admin"},
	}
}

func loaded(t *testing.T, records []Record) *State {
	t.Helper()
	s := NewState(10)
	s.Load(records)
	return s
}

func workingIDs(s *State) []string {
	return ids(s.Working())
}

func TestNewState(t *testing.T) {
	s := NewState(0)
	assert.Equal(t, 10, s.PageSize(), "non-positive page size falls back to the default")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 1, s.PageCount())
	assert.Empty(t, s.Window())
}

func TestState_Load(t *testing.T) {
	records := sampleRecords()
	records[0].IsSelected = true
	records[1].IsEditing = true

	s := NewState(10)
	s.GoTo(3)
	change := s.Load(records)

	assert.Equal(t, ChangeLoad, change.Kind)
	assert.True(t, change.Applied)
	assert.Equal(t, 5, change.Size)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, workingIDs(s))
	assert.Len(t, s.Full(), 5)
	assert.Empty(t, s.Selected(), "flags are reset on load")
	_, editing := s.Editing()
	assert.False(t, editing)
	assert.True(t, records[0].IsSelected, "caller slice is not modified")
}

func TestState_Search(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term returns the full set in order", "", []string{"1", "2", "3", "4", "5"}},
		{"case-insensitive name match", "ARVIND", []string{"3"}},
		{"role match", "admin", []string{"3", "5"}},
		{"email domain matches everyone", "@MAILINATOR", []string{"1", "2", "3", "4", "5"}},
		{"id is part of the searched text", "4caterina", []string{"4"}},
		{"term may span fields", "zolaemile@", []string{"5"}},
		{"unicode folding", "émile", []string{"5"}},
		{"no match", "nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t, sampleRecords())
			change := s.Search(tt.term)

			assert.Equal(t, ChangeSearch, change.Kind)
			assert.Equal(t, tt.want, workingIDs(s))
			assert.Equal(t, tt.term, s.Query())
		})
	}
}

func TestState_SearchResultIsSubsetOfFullSet(t *testing.T) {
	s := loaded(t, sampleRecords())
	full := map[string]Record{}
	for _, r := range s.Full() {
		full[r.ID] = r
	}

	for _, term := range []string{"", "a", "Mi", "member", "@", "x", "1"} {
		s.Search(term)
		m := NewMatcher(term)
		for _, r := range s.Working() {
			assert.Contains(t, full, r.ID)
			assert.True(t, m.Match(r), "term %q should match %q", term, r.ID)
		}
	}
}

func TestState_SearchResetsPage(t *testing.T) {
	s := loaded(t, makeRecords(35))
	s.GoTo(3)
	require.Equal(t, 3, s.Page())

	change := s.Search("member")
	assert.Equal(t, 1, s.Page())
	assert.True(t, change.PageChanged())
	assert.Equal(t, 3, change.PageBefore)

	s.GoTo(2)
	s.Search("")
	assert.Equal(t, 1, s.Page(), "clearing the search also resets the page")
}

func TestState_SetField(t *testing.T) {
	s := loaded(t, sampleRecords())
	before := s.Working()

	change, err := s.SetField("3", FieldName, "X")
	require.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, []string{"3"}, change.IDs)

	after := s.Working()
	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID == "3" {
			want := before[i]
			want.Name = "X"
			assert.Equal(t, want, after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "untouched record %s changed", before[i].ID)
	}

	full, _ := findByID(s.Full(), "3")
	assert.Equal(t, "Arvind Kumar", full.Name, "full set is not edited")
}

func TestState_SetFieldMissAndUnknownField(t *testing.T) {
	s := loaded(t, sampleRecords())

	change, err := s.SetField("404", FieldRole, "admin")
	require.NoError(t, err)
	assert.False(t, change.Applied)
	assert.Nil(t, change.IDs)

	_, err = s.SetField("1", Field("id"), "7")
	require.ErrorIs(t, err, ErrUnknownField)
	r, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "1", r.ID)
}

func TestState_ToggleEditingAndSave(t *testing.T) {
	s := loaded(t, sampleRecords())

	s.ToggleSelect("2")
	change := s.ToggleEditing("2", true)
	assert.True(t, change.Applied)
	id, editing := s.Editing()
	assert.True(t, editing)
	assert.Equal(t, "2", id)

	change, err := s.Save("2", map[Field]string{FieldName: "Aish N", FieldRole: "admin"})
	require.NoError(t, err)
	assert.Equal(t, ChangeSave, change.Kind)

	r, _ := s.Get("2")
	assert.Equal(t, "Aish N", r.Name)
	assert.Equal(t, "admin", r.Role)
	assert.Equal(t, "aishwarya@mailinator.com", r.Email)
	assert.False(t, r.IsEditing)
	assert.False(t, r.IsSelected, "saving clears the selection")

	_, err = s.Save("2", map[Field]string{Field("bogus"): "x"})
	assert.ErrorIs(t, err, ErrUnknownField)

	change = s.ToggleEditing("404", true)
	assert.False(t, change.Applied)
}

func TestState_SaveIsAllOrNothing(t *testing.T) {
	s := loaded(t, sampleRecords())
	s.ToggleEditing("2", true)

	_, err := s.Save("2", map[Field]string{FieldName: "Changed", Field("bogus"): "x"})
	require.ErrorIs(t, err, ErrUnknownField)
	r, _ := s.Get("2")
	assert.NotEqual(t, "Changed", r.Name, "no field is committed when one is unknown")
	assert.True(t, r.IsEditing)

	change, err := s.Save("404", map[Field]string{FieldName: "Ghost"})
	require.NoError(t, err)
	assert.False(t, change.Applied)
	assert.Empty(t, change.IDs)
}

func TestState_Delete(t *testing.T) {
	s := loaded(t, sampleRecords())

	change := s.Delete("3")
	assert.True(t, change.Applied)
	assert.Equal(t, []string{"1", "2", "4", "5"}, workingIDs(s))
	assert.Len(t, s.Full(), 5, "full set is untouched by delete")

	change = s.Delete("3")
	assert.False(t, change.Applied, "second delete is a lookup miss")
	assert.Equal(t, 4, s.Len())
}

func TestState_SelectAll(t *testing.T) {
	s := loaded(t, sampleRecords())

	s.SelectAll(true)
	assert.True(t, s.AllSelected())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, s.Selected())

	s.SelectAll(false)
	assert.False(t, s.AllSelected())
	assert.Empty(t, s.Selected())

	empty := NewState(10)
	change := empty.SelectAll(true)
	assert.False(t, change.Applied)
	assert.False(t, empty.AllSelected())
}

func TestState_SelectPage(t *testing.T) {
	s := loaded(t, makeRecords(25))
	s.GoTo(2)

	change := s.SelectPage(true)
	assert.Len(t, change.IDs, 10)
	assert.Equal(t, "11", s.Selected()[0])
	assert.Equal(t, "20", s.Selected()[9])
	assert.Len(t, s.Selected(), 10)
}

func TestState_ToggleSelectIsIndependentPerRecord(t *testing.T) {
	s := loaded(t, sampleRecords())

	s.ToggleSelect("2")
	s.ToggleSelect("4")
	s.ToggleEditing("4", true)
	assert.Equal(t, []string{"2", "4"}, s.Selected())

	s.ToggleSelect("2")
	assert.Equal(t, []string{"4"}, s.Selected())
	r, _ := s.Get("4")
	assert.True(t, r.IsEditing)
	assert.True(t, r.IsSelected)
}

func TestState_DeleteSelected(t *testing.T) {
	s := loaded(t, sampleRecords())
	s.ToggleSelect("2")
	s.ToggleSelect("4")

	change := s.DeleteSelected()
	assert.True(t, change.Applied)
	assert.Equal(t, []string{"2", "4"}, change.IDs)
	assert.Equal(t, []string{"1", "3", "5"}, workingIDs(s))

	change = s.DeleteSelected()
	assert.False(t, change.Applied)
}

func TestState_EditsAreLostOnResearch(t *testing.T) {
	s := loaded(t, sampleRecords())

	s.Search("mailinator")
	_, err := s.SetField("1", FieldName, "Renamed")
	require.NoError(t, err)
	s.Delete("2")

	s.Search("")
	r, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Aaron Miles", r.Name, "search rebuilds the working set from the full set")
	_, ok = s.Get("2")
	assert.True(t, ok, "deleted record reappears after a new search")
}

func TestState_PageClampedAfterDelete(t *testing.T) {
	s := loaded(t, makeRecords(12))
	assert.Equal(t, 2, s.PageCount())

	s.NextPage()
	require.Equal(t, 2, s.Page())

	for _, id := range []string{"10", "11", "12"} {
		s.Delete(id)
	}
	assert.Equal(t, 1, s.PageCount())
	assert.Equal(t, 1, s.Page(), "page is clamped once the last page disappears")
}

func TestState_PageClampedAfterDeleteSelected(t *testing.T) {
	s := loaded(t, makeRecords(21))
	s.GoTo(3)
	s.SelectPage(true)

	change := s.DeleteSelected()
	assert.Equal(t, 3, change.PageBefore)
	assert.Equal(t, 2, change.PageAfter)
	assert.Len(t, s.Window(), 10)
}

func TestState_Navigation(t *testing.T) {
	s := loaded(t, makeRecords(25))

	change := s.PrevPage()
	assert.False(t, change.Applied, "previous is disabled on page 1")
	assert.Equal(t, 1, s.Page())

	s.NextPage()
	s.NextPage()
	assert.Equal(t, 3, s.Page())
	change = s.NextPage()
	assert.False(t, change.Applied, "next is disabled on the last page")

	s.GoTo(99)
	assert.Equal(t, 3, s.Page())
	s.GoTo(-1)
	assert.Equal(t, 1, s.Page())

	s.GoTo(2)
	window := s.Window()
	require.Len(t, window, 10)
	assert.Equal(t, "11", window[0].ID)
	assert.Equal(t, "20", window[9].ID)
}

func TestState_WorkingIsACopy(t *testing.T) {
	s := loaded(t, sampleRecords())
	snapshot := s.Working()

	s.ToggleSelect("1")
	assert.False(t, snapshot[0].IsSelected)

	snapshot[1].Name = "mutated"
	r, _ := s.Get("2")
	assert.Equal(t, "Aishwarya Naik", r.Name)
}

func findByID(records []Record, id string) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
