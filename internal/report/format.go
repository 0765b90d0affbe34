package report

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateFormat = "2006-01-02 15:04:05 MST"

// humanize turns a finding key such as low_hours_high_pay into a title.
// A cases.Caser is stateful, so each call builds its own.
func humanize(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// trueKeys returns the keys in order whose flag is set.
func trueKeys(order []string, flags map[string]bool) []string {
	keys := make([]string, 0, len(order))
	for _, k := range order {
		if flags[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
