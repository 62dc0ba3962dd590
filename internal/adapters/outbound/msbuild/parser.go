// Package msbuild parses the three MSBuild-adjacent XML shapes the toolkit
// consumes: packages.config, project files with PackageReference elements,
// and Directory.Packages.props. Parsing is a token scan, so elements are
// found at any nesting depth regardless of attribute order or quoting.
package msbuild

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cpmkit/cpmkit/internal/domain"
)

// PackageReference is an inline reference in a project file. A non-empty
// Version means the reference has not been migrated yet.
type PackageReference struct {
	Name    string
	Version string
}

// PropsFile is the parsed central version file.
type PropsFile struct {
	ManagedCentrally bool
	// Entries keeps duplicates: the validator needs to flag packages
	// declared more than once.
	Entries []domain.PackageDeclaration
}

// ParsePackagesConfig extracts every <package id="..." version="..."/> entry
// from a legacy packages.config document.
func ParsePackagesConfig(content, sourceFile string) ([]domain.PackageDeclaration, error) {
	var decls []domain.PackageDeclaration
	err := scan(content, func(el xml.StartElement) {
		if el.Name.Local != "package" {
			return
		}
		decls = append(decls, domain.PackageDeclaration{
			Name:       attr(el, "id"),
			Version:    attr(el, "version"),
			SourceFile: sourceFile,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", sourceFile, err)
	}
	return decls, nil
}

// ScanPackageReferences extracts every PackageReference element from a
// project file, at any depth. Version is empty for migrated references.
func ScanPackageReferences(content string) ([]PackageReference, error) {
	var refs []PackageReference
	err := scan(content, func(el xml.StartElement) {
		if el.Name.Local != "PackageReference" {
			return
		}
		name := attr(el, "Include")
		if name == "" {
			return
		}
		refs = append(refs, PackageReference{Name: name, Version: attr(el, "Version")})
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// ParseProps reads a Directory.Packages.props document: the centrally-managed
// flag and every PackageVersion entry, duplicates included.
func ParseProps(content, sourceFile string) (*PropsFile, error) {
	props := &PropsFile{}
	decoder := xml.NewDecoder(strings.NewReader(content))
	var inManageFlag bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", sourceFile, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case domain.CentralManagementProperty:
				inManageFlag = true
			case "PackageVersion":
				props.Entries = append(props.Entries, domain.PackageDeclaration{
					Name:       attr(el, "Include"),
					Version:    attr(el, "Version"),
					SourceFile: sourceFile,
				})
			}
		case xml.CharData:
			if inManageFlag && strings.TrimSpace(string(el)) == "true" {
				props.ManagedCentrally = true
			}
		case xml.EndElement:
			if el.Name.Local == domain.CentralManagementProperty {
				inManageFlag = false
			}
		}
	}
	return props, nil
}

func scan(content string, visit func(xml.StartElement)) error {
	decoder := xml.NewDecoder(strings.NewReader(content))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if el, ok := tok.(xml.StartElement); ok {
			visit(el)
		}
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
