package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// The rewrite operations work on raw project file text. They are pure:
// content in, content plus change count out. Each one is idempotent, so
// reapplying an operation to its own output is a no-op, and a zero change
// count is the caller's signal to skip backup and write entirely.

var (
	inlineVersionRe = regexp.MustCompile(`(<PackageReference\s+Include="[^"]+")(\s+Version="[^"]+")(\s*/?)`)
	propertyGroupRe = regexp.MustCompile(`<PropertyGroup(?:\s[^>]*)?>`)
)

// SharedAssemblyInfoMarker gates the assembly-info injection: only projects
// that compile the shared metadata file need GenerateAssemblyInfo disabled.
const SharedAssemblyInfoMarker = "SharedAssemblyInfo"

// StripPackageVersions removes the Version attribute from every
// PackageReference element that carries one, preserving self-closing form.
// Elements already lacking a Version attribute are untouched.
func StripPackageVersions(content string) (string, int) {
	count := len(inlineVersionRe.FindAllString(content, -1))
	if count == 0 {
		return content, 0
	}
	return inlineVersionRe.ReplaceAllString(content, "${1}${3}"), count
}

// AddAssemblyInfoProperty inserts <GenerateAssemblyInfo>false</...> as the
// first child of the first PropertyGroup, but only in files referencing
// SharedAssemblyInfo that do not already declare the property. Files without
// any PropertyGroup are left alone.
func AddAssemblyInfoProperty(content string) (string, int) {
	if !strings.Contains(content, SharedAssemblyInfoMarker) {
		return content, 0
	}
	return AddProperty(content, "GenerateAssemblyInfo", "false")
}

// AddProperty inserts <name>value</name> as the first child of the first
// PropertyGroup in document order. It declines silently when the property
// is already declared anywhere in the file or no PropertyGroup exists.
func AddProperty(content, name, value string) (string, int) {
	if strings.Contains(content, "<"+name+">") {
		return content, 0
	}
	loc := propertyGroupRe.FindStringIndex(content)
	if loc == nil {
		return content, 0
	}
	insert := fmt.Sprintf("\n    <%s>%s</%s>", name, value, name)
	return content[:loc[1]] + insert + content[loc[1]:], 1
}

// RemovePackageReference deletes every PackageReference element for the
// named package, self-closing or open form, along with its trailing line.
// Count is the number of elements removed; zero means the file is untouched.
func RemovePackageReference(content, name string) (string, int) {
	pattern := fmt.Sprintf(
		`<PackageReference\s+Include="%s"[^>]*(?:/>|>(?s:.*?)</PackageReference>)[^\S\n]*\n?`,
		regexp.QuoteMeta(name),
	)
	re := regexp.MustCompile(pattern)
	count := len(re.FindAllString(content, -1))
	if count == 0 {
		return content, 0
	}
	return re.ReplaceAllString(content, ""), count
}
