package domain

import "strings"

// CatchAllCategory collects every package no prefix matches. It is always
// rendered last in grouped output.
const CatchAllCategory = "Other"

// Category pairs a display label with the package-name prefixes it claims.
// Matching is case-sensitive and first-match-wins in table order.
type Category struct {
	Label    string   `json:"label" yaml:"label"`
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
}

// DefaultCategories is the built-in grouping used by extraction reports and
// generated Directory.Packages.props files.
func DefaultCategories() []Category {
	return []Category{
		{Label: "AWS SDK", Prefixes: []string{"AWSSDK.", "Amazon."}},
		{Label: "Microsoft Extensions", Prefixes: []string{"Microsoft.Extensions."}},
		{Label: "Microsoft Core", Prefixes: []string{"Microsoft.NETFramework", "Microsoft.Bcl", "System."}},
		{Label: "Testing", Prefixes: []string{"FluentAssertions", "Castle.Core", "Moq", "NUnit", "xunit"}},
		{Label: "Logging", Prefixes: []string{"Common.Logging", "log4net", "NLog", "Serilog"}},
		{Label: "JSON", Prefixes: []string{"Newtonsoft.Json", "System.Text.Json"}},
		{Label: "Utilities", Prefixes: []string{"ZstdSharp", "Fare", "AutoMapper"}},
	}
}

// Categorizer assigns packages to categories by ordered prefix match.
type Categorizer struct {
	categories []Category
}

func NewCategorizer(categories []Category) *Categorizer {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	return &Categorizer{categories: categories}
}

// Categorize returns the label of the first category with a matching prefix,
// or CatchAllCategory when none match. Every name gets exactly one label.
func (c *Categorizer) Categorize(name string) string {
	for _, cat := range c.categories {
		for _, prefix := range cat.Prefixes {
			if strings.HasPrefix(name, prefix) {
				return cat.Label
			}
		}
	}
	return CatchAllCategory
}

// Labels returns the category labels in table order, with the catch-all
// appended last.
func (c *Categorizer) Labels() []string {
	labels := make([]string, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		labels = append(labels, cat.Label)
	}
	return append(labels, CatchAllCategory)
}

// Partition groups names by category. The returned map is total: every input
// name appears under exactly one label.
func (c *Categorizer) Partition(names []string) map[string][]string {
	groups := make(map[string][]string)
	for _, name := range names {
		label := c.Categorize(name)
		groups[label] = append(groups[label], name)
	}
	return groups
}
