package domain_test

import (
	"testing"

	"github.com/cpmkit/cpmkit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategorizer_FirstMatchWins(t *testing.T) {
	c := domain.NewCategorizer(nil)

	assert.Equal(t, "AWS SDK", c.Categorize("AWSSDK.S3"))
	assert.Equal(t, "AWS SDK", c.Categorize("Amazon.Lambda.Core"))
	// Microsoft.Extensions. is claimed before the broader Microsoft Core
	// prefixes appear in the table.
	assert.Equal(t, "Microsoft Extensions", c.Categorize("Microsoft.Extensions.Logging"))
	assert.Equal(t, "Microsoft Core", c.Categorize("System.Text.Encodings.Web"))
	assert.Equal(t, "JSON", c.Categorize("Newtonsoft.Json"))
}

func TestCategorizer_CaseSensitive(t *testing.T) {
	c := domain.NewCategorizer(nil)
	assert.Equal(t, domain.CatchAllCategory, c.Categorize("awssdk.S3"))
}

func TestCategorizer_CatchAll(t *testing.T) {
	c := domain.NewCategorizer(nil)
	assert.Equal(t, domain.CatchAllCategory, c.Categorize("Dapper"))
}

func TestCategorizer_PartitionIsTotal(t *testing.T) {
	c := domain.NewCategorizer(nil)
	names := []string{"AWSSDK.Core", "Moq", "Dapper", "Serilog", "CsvHelper"}

	groups := c.Partition(names)

	total := 0
	for _, members := range groups {
		total += len(members)
	}
	assert.Equal(t, len(names), total, "every name lands in exactly one category")
	assert.ElementsMatch(t, []string{"Dapper", "CsvHelper"}, groups[domain.CatchAllCategory],
		"catch-all receives only unmatched names")
}

func TestCategorizer_CustomTableOrder(t *testing.T) {
	c := domain.NewCategorizer([]domain.Category{
		{Label: "Narrow", Prefixes: []string{"Contoso.Web."}},
		{Label: "Broad", Prefixes: []string{"Contoso."}},
	})

	assert.Equal(t, "Narrow", c.Categorize("Contoso.Web.Client"))
	assert.Equal(t, "Broad", c.Categorize("Contoso.Data"))
	assert.Equal(t, []string{"Narrow", "Broad", domain.CatchAllCategory}, c.Labels())
}
