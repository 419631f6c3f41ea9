package entities

import (
	"fmt"
	"strings"
)

const (
	defaultMainPackage       = "studiocms"
	defaultScope             = "@studiocms/"
	defaultFramework         = "astro"
	defaultFrameworkScope    = "@astrojs/"
	defaultSelfPackage       = "@studiocms/upgrade"
	defaultDisplayName       = "StudioCMS"
	defaultUpgradeGuideURL   = "https://docs.studiocms.dev"
	defaultUpgradeGuideTitle = "Upgrade to StudioCMS v%d"
	defaultReleasesURL       = "https://github.com/withstudiocms/studiocms/releases"
)

// Platform describes the package family this upgrader is responsible for.
type Platform struct {
	DisplayName       string `yaml:"display_name"`
	MainPackage       string `yaml:"main_package"`
	Scope             string `yaml:"scope"`
	Framework         string `yaml:"framework"`
	FrameworkScope    string `yaml:"framework_scope"`
	SelfPackage       string `yaml:"self_package"`
	UpgradeGuideURL   string `yaml:"upgrade_guide_url"`
	UpgradeGuideTitle string `yaml:"upgrade_guide_title"` // fmt pattern receiving the target major
	ReleasesURL       string `yaml:"releases_url"`
}

// DefaultPlatform returns the StudioCMS package family.
func DefaultPlatform() Platform {
	return Platform{
		DisplayName:       defaultDisplayName,
		MainPackage:       defaultMainPackage,
		Scope:             defaultScope,
		Framework:         defaultFramework,
		FrameworkScope:    defaultFrameworkScope,
		SelfPackage:       defaultSelfPackage,
		UpgradeGuideURL:   defaultUpgradeGuideURL,
		UpgradeGuideTitle: defaultUpgradeGuideTitle,
		ReleasesURL:       defaultReleasesURL,
	}
}

// IsFamilyPackage reports whether name belongs to the platform or its framework.
func (p Platform) IsFamilyPackage(name string) bool {
	return name == p.MainPackage ||
		(p.Scope != "" && strings.HasPrefix(name, p.Scope)) ||
		(p.Framework != "" && name == p.Framework) ||
		(p.FrameworkScope != "" && strings.HasPrefix(name, p.FrameworkScope))
}

// IsSupported applies the full eligibility filter to a declared dependency:
// family membership, self exclusion, a registry specifier, and a coercible
// version.
func (p Platform) IsSupported(name, version string) bool {
	if !p.IsFamilyPackage(name) {
		return false
	}
	if name == p.SelfPackage {
		return false
	}
	if IsReferenceSpecifier(version) {
		return false
	}
	_, ok := CoerceVersion(version)
	return ok
}

// GuideTitle renders the upgrade guide title for the given major version.
func (p Platform) GuideTitle(major uint64) string {
	return fmt.Sprintf(p.UpgradeGuideTitle, major)
}

// withDefaults fills every empty field from DefaultPlatform.
func (p Platform) withDefaults() Platform {
	def := DefaultPlatform()
	fill := func(value *string, fallback string) {
		if *value == "" {
			*value = fallback
		}
	}
	fill(&p.DisplayName, def.DisplayName)
	fill(&p.MainPackage, def.MainPackage)
	fill(&p.Scope, def.Scope)
	fill(&p.Framework, def.Framework)
	fill(&p.FrameworkScope, def.FrameworkScope)
	fill(&p.SelfPackage, def.SelfPackage)
	fill(&p.UpgradeGuideURL, def.UpgradeGuideURL)
	fill(&p.UpgradeGuideTitle, def.UpgradeGuideTitle)
	fill(&p.ReleasesURL, def.ReleasesURL)
	return p
}
