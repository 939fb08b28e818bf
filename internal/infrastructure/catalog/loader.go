// Package catalog loads the permission and feature catalog and syncs it into
// storage.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/domain/permission"
)

//go:embed catalog.yaml
var defaultDocument []byte

type document struct {
	Verbs []struct {
		Name string `yaml:"name"`
		Type int    `yaml:"type"`
	} `yaml:"verbs"`
	Scopes      map[string][]string `yaml:"scopes"`
	Permissions []struct {
		Codename string `yaml:"codename"`
		Name     string `yaml:"name"`
		Type     int    `yaml:"type"`
		Scope    string `yaml:"scope"`
	} `yaml:"permissions"`
	Features []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"features"`
}

// scopeOrder keeps the generated definitions stable across loads
var scopeOrder = []permission.ScopeType{permission.ScopePlatform, permission.ScopeOrganization}

// Load parses the catalog embedded in the binary
func Load() (*catalog.Catalog, error) {
	return Parse(defaultDocument)
}

// Parse builds a catalog from a YAML document. Every verb is crossed with the
// objects of each scope; explicit permissions are appended after.
func Parse(data []byte) (*catalog.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for name := range doc.Scopes {
		if !permission.ScopeType(name).IsValid() {
			return nil, fmt.Errorf("catalog has unknown scope %q", name)
		}
	}

	var perms []catalog.PermissionDef
	for _, scope := range scopeOrder {
		for _, object := range doc.Scopes[string(scope)] {
			for _, verb := range doc.Verbs {
				perms = append(perms, catalog.PermissionDef{
					Codename: verb.Name + "_" + object,
					Name:     fmt.Sprintf("Can %s %s", verb.Name, strings.ReplaceAll(object, "_", " ")),
					Type:     verb.Type,
					Scope:    scope,
				})
			}
		}
	}
	for _, p := range doc.Permissions {
		perms = append(perms, catalog.PermissionDef{
			Codename: p.Codename,
			Name:     p.Name,
			Type:     p.Type,
			Scope:    permission.ScopeType(p.Scope),
		})
	}

	features := make([]catalog.FeatureDef, 0, len(doc.Features))
	for _, f := range doc.Features {
		features = append(features, catalog.FeatureDef{Code: f.Code, Name: f.Name})
	}

	cat, err := catalog.New(perms, features)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}
