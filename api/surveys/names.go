package surveys

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ResolveNameConflict returns title, or "title (n)" with the smallest free n
// when one of existing already uses title (case-insensitive).
func ResolveNameConflict(title string, existing []string) string {
	if title == "" || len(existing) == 0 {
		return title
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return title
	}

	if !titleTaken(trimmed, existing) {
		return trimmed
	}

	pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(trimmed) + `\s*\((\d+)\)$`)
	return fmt.Sprintf("%s (%d)", trimmed, nextFreeNumber(pattern, existing))
}

// ResolveCopyNameConflict names a duplicate "title (Copy)", falling back to
// "title (Copy (n))" with the smallest free n.
func ResolveCopyNameConflict(title string, existing []string) string {
	trimmed := strings.TrimSpace(title)
	copyTitle := trimmed + " (Copy)"

	if len(existing) == 0 || !titleTaken(copyTitle, existing) {
		return copyTitle
	}

	pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(trimmed) + `\s*\(Copy\s*\((\d+)\)\)$`)
	return fmt.Sprintf("%s (Copy (%d))", trimmed, nextFreeNumber(pattern, existing))
}

func titleTaken(title string, existing []string) bool {
	for _, candidate := range existing {
		if strings.EqualFold(strings.TrimSpace(candidate), title) {
			return true
		}
	}
	return false
}

func nextFreeNumber(pattern *regexp.Regexp, existing []string) int {
	seen := make(map[int]struct{})
	for _, candidate := range existing {
		match := pattern.FindStringSubmatch(strings.TrimSpace(candidate))
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil {
			seen[n] = struct{}{}
		}
	}

	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	next := 1
	for _, n := range numbers {
		if n != next {
			break
		}
		next++
	}
	return next
}
