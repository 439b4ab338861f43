package taxonomy

import "strings"

// Uncategorized is the sentinel assigned when neither the completion oracle
// nor the fallback classifier produced a usable category.
const Uncategorized = "uncategorized"

// CategoryList is the closed set of general categories the extraction prompt
// allows. Brand or vendor names are never valid categories.
var CategoryList = []string{
	"Food",
	"Transport",
	"Health",
	"Shopping",
	"Groceries",
	"Rent",
	"Entertainment",
	"Bills",
	"Utilities",
	"Travel",
	"Others",
}

var allowed = buildAllowed()

func buildAllowed() map[string]bool {
	m := make(map[string]bool, len(CategoryList)+1)
	for _, c := range CategoryList {
		m[strings.ToLower(c)] = true
	}
	m[Uncategorized] = true
	return m
}

// Normalize lowercases and trims a category label, matching how records are
// stored.
func Normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// IsAllowed reports whether a normalized category belongs to the closed set.
func IsAllowed(category string) bool {
	return allowed[Normalize(category)]
}
