// Package pagination provides page math, CLI pagination flags, and result metadata.
//
// This package contains the pagination logic shared by the interactive table
// and the list command, including:
//   - PageCount, Clamp, Prev, Next, Buttons and WindowSlice: page arithmetic over a 1-based page
//   - Params and ParseSort: validation of the list command's page and sort flags
//   - Meta: page metadata for JSON and YAML output
//
// A page is always 1-based and, for a list of any length, there is at least one page.
package pagination
