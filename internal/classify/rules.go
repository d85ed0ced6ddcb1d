package classify

import (
	"context"
	"strings"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// knownMerchants maps well-known subscription merchants to categories with
// high confidence.
var knownMerchants = map[string]domain.Category{
	"netflix":         domain.CategoryStreaming,
	"spotify":         domain.CategoryStreaming,
	"disney":          domain.CategoryStreaming,
	"hulu":            domain.CategoryStreaming,
	"prime video":     domain.CategoryStreaming,
	"youtube premium": domain.CategoryStreaming,
	"deezer":          domain.CategoryStreaming,
	"canal+":          domain.CategoryStreaming,

	"adobe":      domain.CategorySoftware,
	"microsoft":  domain.CategorySoftware,
	"office 365": domain.CategorySoftware,
	"cursor":     domain.CategorySoftware,
	"apple.com":  domain.CategorySoftware,
	"github":     domain.CategorySoftware,
	"jetbrains":  domain.CategorySoftware,
	"dropbox":    domain.CategorySoftware,
	"notion":     domain.CategorySoftware,
	"icloud":     domain.CategorySoftware,
	"google one": domain.CategorySoftware,

	"basic fit":    domain.CategorySport,
	"basic-fit":    domain.CategorySport,
	"fitness park": domain.CategorySport,
	"neoness":      domain.CategorySport,

	"le monde":       domain.CategoryNews,
	"mediapart":      domain.CategoryNews,
	"new york times": domain.CategoryNews,
}

// categoryKeywords maps generic keywords to categories for fallback matching.
var categoryKeywords = map[string]domain.Category{
	"gym":     domain.CategorySport,
	"fitness": domain.CategorySport,
	"golf":    domain.CategorySport,
	"tennis":  domain.CategorySport,
	"yoga":    domain.CategorySport,
	"pilates": domain.CategorySport,
	"sport":   domain.CategorySport,
	"climb":   domain.CategorySport,
	"piscine": domain.CategorySport,

	"streaming": domain.CategoryStreaming,
	"video":     domain.CategoryStreaming,
	"music":     domain.CategoryStreaming,

	"software": domain.CategorySoftware,
	"saas":     domain.CategorySoftware,
	"cloud":    domain.CategorySoftware,
	"office":   domain.CategorySoftware,
	"hosting":  domain.CategorySoftware,

	"news":     domain.CategoryNews,
	"times":    domain.CategoryNews,
	"journal":  domain.CategoryNews,
	"magazine": domain.CategoryNews,
	"presse":   domain.CategoryNews,

	"insurance":    domain.CategoryServices,
	"assurance":    domain.CategoryServices,
	"mobile":       domain.CategoryServices,
	"internet":     domain.CategoryServices,
	"telecom":      domain.CategoryServices,
	"subscription": domain.CategoryServices,
	"membership":   domain.CategoryServices,
	"abonnement":   domain.CategoryServices,
	"mutuelle":     domain.CategoryServices,
}

// RuleBased is a deterministic keyword categorizer. It always succeeds,
// which makes it the terminal fallback behind the AI backends.
type RuleBased struct{}

// NewRuleBased creates the keyword categorizer.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Classify matches the merchant and sample descriptions against known
// merchants first, then generic keywords, and reports Other otherwise.
func (r *RuleBased) Classify(_ context.Context, merchant string, samples []string) (domain.Category, float64, error) {
	text := strings.ToLower(merchant + " " + strings.Join(samples, " "))

	for name, category := range knownMerchants {
		if strings.Contains(text, name) {
			return category, 0.9, nil
		}
	}
	for keyword, category := range categoryKeywords {
		if strings.Contains(text, keyword) {
			return category, 0.6, nil
		}
	}
	return domain.CategoryOther, 0.3, nil
}
