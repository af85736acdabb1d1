package classify

import (
	"regexp"
)

// Category is the classification tag assigned to a line
type Category int

const (
	Integer Category = iota
	Float
	String
)

// Categories lists every category in reporting order
var Categories = []Category{Integer, Float, String}

// String returns the plural lowercase name used for output files
func (c Category) String() string {
	switch c {
	case Integer:
		return "integers"
	case Float:
		return "floats"
	case String:
		return "strings"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether lines of this category are parsed as numbers
func (c Category) IsNumeric() bool {
	return c == Integer || c == Float
}

// Rule maps a full-line pattern to a category
type Rule struct {
	Pattern  *regexp.Regexp
	Category Category
}

// DefaultRules are evaluated in order; the first match wins.
// "5." does not match the float pattern and ends up as a string.
var DefaultRules = []Rule{
	{Pattern: regexp.MustCompile(`^-?\d+$`), Category: Integer},
	{Pattern: regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`), Category: Float},
}

// Classifier assigns categories using an ordered rule list.
// Lines matching no rule fall back to String.
type Classifier struct {
	rules []Rule
}

// New creates a classifier from rules. A nil slice selects DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify returns the category of a trimmed, non-empty line
func (c *Classifier) Classify(line string) Category {
	for _, r := range c.rules {
		if r.Pattern.MatchString(line) {
			return r.Category
		}
	}
	return String
}

var defaultClassifier = New(nil)

// Classify classifies line with DefaultRules
func Classify(line string) Category {
	return defaultClassifier.Classify(line)
}
