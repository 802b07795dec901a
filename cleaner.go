package wptransfer

// Cleaner strips page-builder scaffolding from post HTML.
type Cleaner interface {
	// Clean returns the simplified HTML. Cleaning its own output is a no-op.
	Clean(html string) (string, error)

	// Text returns the visible text of html with whitespace collapsed.
	Text(html string) (string, error)
}

// CleanPolicy configures which markup a Cleaner removes.
// Class matching is by case-insensitive substring.
type CleanPolicy struct {
	// RemoveElements are dropped together with their content.
	RemoveElements []string `json:"removeElements"`

	// DropClasses mark elements dropped together with their content.
	DropClasses []string `json:"dropClasses"`

	// WrapperClasses mark elements replaced by their children.
	WrapperClasses []string `json:"wrapperClasses"`

	// StripAttributes are removed from every element.
	StripAttributes []string `json:"stripAttributes"`

	// StripAttributePrefixes remove every attribute with a matching prefix.
	StripAttributePrefixes []string `json:"stripAttributePrefixes"`

	// EmptyContainers are removed when they hold only whitespace.
	EmptyContainers []string `json:"emptyContainers"`

	// UnwrapElements are replaced by their children.
	UnwrapElements []string `json:"unwrapElements"`
}

// DefaultCleanPolicy returns the policy for Enfold/Avia page-builder output.
func DefaultCleanPolicy() CleanPolicy {
	return CleanPolicy{
		RemoveElements:         []string{"style", "script", "noscript"},
		WrapperClasses:         []string{"avia", "flex_column", "container", "template-page", "post-entry", "entry-content", "av_textblock"},
		StripAttributes:        []string{"style", "class", "id"},
		StripAttributePrefixes: []string{"data-"},
		EmptyContainers:        []string{"div", "section"},
		UnwrapElements:         []string{"div", "section", "main", "aside"},
	}
}
