package interpret

import (
	"fmt"
	"strings"
	"time"

	"github.com/bridgeyou/search/internal/domain/bank"
	"github.com/bridgeyou/search/internal/domain/search/filter"
	"github.com/bridgeyou/search/internal/domain/post"
)

// commonCities are the finance hubs forum members post about most.
var commonCities = []string{
	"Paris", "Londres", "New York", "Genève", "Zurich", "Luxembourg",
	"Francfort", "Hong Kong", "Singapour", "Dubaï", "Milan", "Madrid", "Lyon",
}

var categoryHints = map[post.Category]string{
	post.CategoryInterview:  "entretiens sales & trading, questions techniques, process de recrutement",
	post.CategorySchool:     "conseils d'école, choix de master, prépa, admissions",
	post.CategoryInternship: "stages, summer internships, graduate programmes, offres",
	post.CategoryQuant:      "quant, hedge funds, maths financières, programmation",
}

var typeHints = map[post.Type]string{
	post.TypeQuestion:   "une question posée à la communauté",
	post.TypeExperience: "un retour d'expérience",
	post.TypeTranscript: "la retranscription d'un entretien",
	post.TypeAttachment: "un post avec fichier joint",
}

const systemInstruction = `You analyse search queries for BridgeYou, a French-speaking forum about ` +
	`finance careers (sales & trading, quant, internships, business schools). ` +
	`Queries are usually in French. Answer with a single JSON object and nothing else.`

// buildPrompt embeds the forum vocabulary and the user's query.
// today anchors relative dates such as "cette année" or "depuis 6 mois".
func buildPrompt(query string, today time.Time) string {
	var b strings.Builder

	b.WriteString("Extract structured search filters from the query below.\n\n")

	b.WriteString("Categories (use these exact values):\n")
	for _, c := range post.Categories {
		fmt.Fprintf(&b, "- %s: %s\n", c, categoryHints[c])
	}

	b.WriteString("\nPost types (use these exact values):\n")
	for _, t := range post.Types {
		fmt.Fprintf(&b, "- %s: %s\n", t, typeHints[t])
	}

	b.WriteString("\nKnown banks (aliases in parentheses):\n")
	for _, name := range bank.KnownNames() {
		if aliases := bank.AliasesOf(name); len(aliases) > 0 {
			fmt.Fprintf(&b, "- %s (%s)\n", name, strings.Join(aliases, ", "))
		} else {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	fmt.Fprintf(&b, "\nCommon cities: %s\n", strings.Join(commonCities, ", "))
	fmt.Fprintf(&b, "Today is %s.\n", today.Format(filter.DateLayout))

	b.WriteString(`
Return exactly this JSON shape:
{
  "searchTerms": ["meaningful keywords from the query"],
  "categories": ["category values implied by the query"],
  "types": ["post type values implied by the query"],
  "tags": ["technical topics such as python, pricing, brainteasers"],
  "cities": ["cities mentioned"],
  "banks": ["banks mentioned, as written or as known names"],
  "dateRange": {"from": "YYYY-MM-DD", "to": "YYYY-MM-DD"},
  "sortBy": "recent | popular | comments",
  "confidence": 0.0
}
Use empty arrays when nothing applies, omit dateRange when no period is mentioned, ` +
		`and set confidence between 0 and 1.

`)
	fmt.Fprintf(&b, "Query: %q\n", query)
	return b.String()
}
