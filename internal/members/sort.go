package members

import (
	"sort"
	"strconv"
)

// Sorter defines the interface for sorting member records.
type Sorter interface {
	// Sort sorts a slice of records by the specified field and order.
	Sort(records []Record, field, order string) []Record
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// RecordSorter implements Sorter for Record.
type RecordSorter struct {
	validFields map[string]bool
}

// NewRecordSorter creates a new RecordSorter with valid sort fields.
func NewRecordSorter() *RecordSorter {
	return &RecordSorter{
		validFields: map[string]bool{
			"id":    true,
			"name":  true,
			"email": true,
			"role":  true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *RecordSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *RecordSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort sorts records by the specified field and order.
// Returns a new sorted slice; does not modify the original.
// If field is invalid, returns the original slice unchanged.
func (s *RecordSorter) Sort(records []Record, field, order string) []Record {
	if !s.IsValidField(field) {
		return records
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == "desc" {
			i, j = j, i
		}

		switch field {
		case "id":
			return lessID(sorted[i].ID, sorted[j].ID)
		case "name":
			return sorted[i].Name < sorted[j].Name
		case "email":
			return sorted[i].Email < sorted[j].Email
		case "role":
			return sorted[i].Role < sorted[j].Role
		default:
			return false
		}
	})

	return sorted
}

// lessID orders numeric ids numerically ("2" before "10") and everything else lexically.
func lessID(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
