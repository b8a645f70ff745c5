package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

// ErrEmptySelection is returned when a selection names no projects.
var ErrEmptySelection = errors.New("nothing selected")

// ParseSelection turns input like "1,3,5-8" or "all" into sorted, unique,
// zero-based indices into a list of n items.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return nil, ErrEmptySelection
	}
	if input == "all" || input == "a" || input == "*" {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi := part, part
		if a, b, ok := strings.Cut(part, "-"); ok {
			lo, hi = strings.TrimSpace(a), strings.TrimSpace(b)
		}
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		if start > end {
			start, end = end, start
		}
		if start < 1 || end > n {
			return nil, fmt.Errorf("selection %q out of range 1-%d", part, n)
		}
		for i := start; i <= end; i++ {
			seen[i-1] = true
		}
	}
	if len(seen) == 0 {
		return nil, ErrEmptySelection
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

// Confirm asks a yes/no question; anything but y or yes is no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := lineReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}

// PromptSelect lists projects and reads a selection line. It is the
// fallback when the interactive selector cannot run.
func PromptSelect(projects []scanner.ScannedProject, in io.Reader, out io.Writer) ([]scanner.ScannedProject, error) {
	PrintResultsTable(out, projects)
	fmt.Fprint(out, "Select projects to clean (e.g. 1,3,5-8 or all): ")

	line, err := lineReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	idx, err := ParseSelection(line, len(projects))
	if err != nil {
		return nil, err
	}

	chosen := make([]scanner.ScannedProject, 0, len(idx))
	for _, i := range idx {
		chosen = append(chosen, projects[i])
	}
	return chosen, nil
}

// lineReader reuses in when it is already buffered, so consecutive prompts
// on the same stream do not lose input to each other's buffers.
func lineReader(in io.Reader) *bufio.Reader {
	if br, ok := in.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(in)
}
