package domain

import (
	"fmt"
	"sort"
	"strings"
)

// PropsFileName is the central version file at the solution root.
const PropsFileName = "Directory.Packages.props"

// CentralManagementProperty must be true for NuGet to honor central pins.
const CentralManagementProperty = "ManagePackageVersionsCentrally"

// GeneratePropsContent renders a Directory.Packages.props document from
// resolved versions: one PropertyGroup enabling central management, then one
// ItemGroup per category (alphabetical, catch-all last) with PackageVersion
// entries sorted by name.
func GeneratePropsContent(resolutions map[string]string, categorizer *Categorizer) string {
	names := make([]string, 0, len(resolutions))
	for name := range resolutions {
		names = append(names, name)
	}
	groups := categorizer.Partition(names)

	labels := make([]string, 0, len(groups))
	for label := range groups {
		if label != CatchAllCategory {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	if _, ok := groups[CatchAllCategory]; ok {
		labels = append(labels, CatchAllCategory)
	}

	var b strings.Builder
	b.WriteString("<Project>\n")
	b.WriteString("  <PropertyGroup>\n")
	fmt.Fprintf(&b, "    <%s>true</%s>\n", CentralManagementProperty, CentralManagementProperty)
	b.WriteString("  </PropertyGroup>\n\n")

	for _, label := range labels {
		packages := groups[label]
		sort.Strings(packages)
		fmt.Fprintf(&b, "  <ItemGroup Label=%q>\n", label)
		for _, name := range packages {
			fmt.Fprintf(&b, "    <PackageVersion Include=%q Version=%q />\n", name, resolutions[name])
		}
		b.WriteString("  </ItemGroup>\n\n")
	}

	b.WriteString("</Project>")
	return b.String()
}
