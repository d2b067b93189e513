// Package members holds the member records shown by the admin table and the
// list state that operates on them.
//
// The State type owns two lists:
//   - the full set, exactly as fetched from the data source
//   - the working set, derived from the full set by Search and then edited,
//     selected and deleted in place
//
// Every mutating method returns a Change describing what it did, so callers
// (the interactive table, the list command, tests) can react without diffing
// the record slices themselves. Edits and deletes only touch the working set;
// a later Search rebuilds the working set from the untouched full set.
package members
