package wptransfer

// Category is a label assigned to a post by keyword matching.
type Category string

// Built-in categories.
const (
	CategoryRealEstate          Category = "Real Estate"
	CategoryRenovation          Category = "Renovation"
	CategorySeniorMoving        Category = "Senior Moving"
	CategoryAntiqueCollectibles Category = "Antique Collectibles"
	CategoryNews                Category = "News"
	CategoryEstateSales         Category = "Estate Sales"
)

// CategoryRule maps a category to the keywords that select it.
type CategoryRule struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

// CategoryTable is an ordered list of rules. When several rules match, the
// earliest one wins. Default applies when no rule matches.
type CategoryTable struct {
	Rules   []CategoryRule `json:"rules"`
	Default Category       `json:"default"`
}

// Validate returns an error if the table cannot categorize anything.
func (t *CategoryTable) Validate() error {
	if t.Default == "" {
		return Errorf(EINVALID, "default category required")
	}
	for _, r := range t.Rules {
		if r.Category == "" {
			return Errorf(EINVALID, "category rule name required")
		}
	}
	return nil
}

// DefaultCategoryTable returns the built-in keyword table.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		Rules: []CategoryRule{
			{Category: CategoryRealEstate, Keywords: []string{"realtor", "home buying", "selling home", "real estate", "property", "cash offer", "home sale"}},
			{Category: CategoryRenovation, Keywords: []string{"renovation", "repair", "remodel", "update", "fix", "contractor", "construction"}},
			{Category: CategorySeniorMoving, Keywords: []string{"senior", "assisted living", "downsizing", "elder", "aging", "retirement", "care placement"}},
			{Category: CategoryAntiqueCollectibles, Keywords: []string{"antique", "collectible", "vintage", "mid-century", "modern furniture", "barbie", "kitchenware", "pottery", "fine art", "rare"}},
			{Category: CategoryNews, Keywords: []string{"announcement", "news", "update", "company"}},
			{Category: CategoryEstateSales, Keywords: []string{"estate sale", "sale at", "pricing", "selling items", "treasure", "shopper"}},
		},
		Default: CategoryEstateSales,
	}
}

// Categorizer assigns a category to a post.
type Categorizer interface {
	// Categorize returns the category for the given title and HTML content.
	// It never fails; unmatched input gets the table default.
	Categorize(title, content string) Category
}
