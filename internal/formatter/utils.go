package formatter

import "fmt"

// headline mirrors the browser heading; fallback searches get a neutral title
func headline(report *Report) string {
	if report.IsDefault || report.Term == "" {
		return "Featured photos"
	}
	return fmt.Sprintf("Search results for %q", report.Term)
}

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
