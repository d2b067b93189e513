package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user typed "y" or "yes" in any case.
	Accepted bool
	// Skipped is true when the prompt was never shown because input is not a terminal.
	Skipped bool
	// Cancelled is true if reading input failed.
	Cancelled bool
}

// Confirm asks question on w and reads one answer from r. It returns
// immediately with Skipped set when interactive is false, so scripts never
// block on a prompt.
//
// The prompt defaults to "No" when the user presses Enter without input.
func Confirm(w io.Writer, r io.Reader, interactive bool, question string) PromptResult {
	if !interactive {
		return PromptResult{Skipped: true}
	}

	fmt.Fprintf(w, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF (Ctrl+D) declines
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}
