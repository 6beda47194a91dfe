// Package bank holds the bank directory entry and the alias table used to
// map colloquial names to canonical directory names.
package bank

import (
	"context"
	"sort"

	"github.com/bridgeyou/search/internal/domain/fold"
)

// Bank is a bank directory entry.
type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryLoader fetches the full bank directory, ordered by name.
type DirectoryLoader func(ctx context.Context) ([]Bank, error)

// aliases maps folded colloquial names to canonical directory names.
var aliases = map[string]string{
	"socgen":           "Société Générale",
	"sg":               "Société Générale",
	"societe generale": "Société Générale",
	"gs":               "Goldman Sachs",
	"goldman":          "Goldman Sachs",
	"jpm":              "JP Morgan",
	"jp":               "JP Morgan",
	"jpmorgan":         "JP Morgan",
	"j.p. morgan":      "JP Morgan",
	"ms":               "Morgan Stanley",
	"bnp":              "BNP Paribas",
	"bnpp":             "BNP Paribas",
	"bofa":             "Bank of America",
	"baml":             "Bank of America",
	"citi":             "Citigroup",
	"db":               "Deutsche Bank",
	"ca-cib":           "Crédit Agricole CIB",
	"cacib":            "Crédit Agricole CIB",
	"credit agricole":  "Crédit Agricole CIB",
	"cs":               "Credit Suisse",
	"hsbc":             "HSBC",
	"barclays":         "Barclays",
	"natixis":          "Natixis",
	"ubs":              "UBS",
	"lazard":           "Lazard",
	"rothschild":       "Rothschild & Co",
}

// Canonical returns the canonical directory name for a known alias,
// or name unchanged when no alias applies.
func Canonical(name string) string {
	if c, ok := aliases[fold.String(name)]; ok {
		return c
	}
	return name
}

// KnownNames returns the sorted canonical names covered by the alias table.
func KnownNames() []string {
	seen := make(map[string]struct{}, len(aliases))
	names := make([]string, 0, len(aliases))
	for _, c := range aliases {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// AliasesOf returns the sorted aliases pointing at canonical.
func AliasesOf(canonical string) []string {
	var out []string
	for a, c := range aliases {
		if c == canonical && !fold.Equal(a, c) {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}
