package packagemanager

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

const (
	nodeModulesDir  = "node_modules"
	yarnBerryMarker = "__metadata:"
	yarnRCFile      = ".yarnrc.yml"
)

// lockfile maps a lock file name to the package manager that writes it.
type lockfile struct {
	file string
	name string
}

// lockfiles are checked in order; the first match wins.
//
//nolint:gochecknoglobals // fixed detection table
var lockfiles = []lockfile{
	{file: "bun.lock", name: entities.PackageManagerBun},
	{file: "bun.lockb", name: entities.PackageManagerBun},
	{file: "deno.lock", name: entities.PackageManagerDeno},
	{file: "pnpm-lock.yaml", name: entities.PackageManagerPnpm},
	{file: "pnpm-workspace.yaml", name: entities.PackageManagerPnpm},
	{file: "yarn.lock", name: entities.PackageManagerYarn},
	{file: "package-lock.json", name: entities.PackageManagerNpm},
	{file: "npm-shrinkwrap.json", name: entities.PackageManagerNpm},
}

// Detector identifies the package manager of a project. Strategies run in
// order: install metadata under node_modules, lock files, then the
// "packageManager" field of package.json. Each strategy walks up from the
// project directory to the filesystem root.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns nil when no strategy matches.
func (d *Detector) Detect(projectDir string) *entities.PackageManager {
	strategies := []func(string) *entities.PackageManager{
		d.fromInstallMetadata,
		d.fromLockfile,
		d.fromPackageManagerField,
	}

	for _, strategy := range strategies {
		for dir := range ancestors(projectDir) {
			if pm := strategy(dir); pm != nil {
				logger.Debugf("[install] Detected %s (%s) in %s", pm.Name, pm.Agent, dir)
				return pm
			}
		}
	}
	return nil
}

func (d *Detector) fromInstallMetadata(dir string) *entities.PackageManager {
	modules := filepath.Join(dir, nodeModulesDir)
	switch {
	case exists(filepath.Join(modules, ".pnpm", "lock.yaml")), exists(filepath.Join(modules, ".modules.yaml")):
		return d.pnpmFromModulesYAML(filepath.Join(modules, ".modules.yaml"))
	case exists(filepath.Join(modules, ".yarn-state.yml")):
		return &entities.PackageManager{Name: entities.PackageManagerYarn, Agent: entities.AgentYarnBerry}
	case exists(filepath.Join(modules, ".yarn-integrity")):
		return &entities.PackageManager{Name: entities.PackageManagerYarn, Agent: entities.PackageManagerYarn}
	case exists(filepath.Join(modules, ".package-lock.json")):
		return &entities.PackageManager{Name: entities.PackageManagerNpm, Agent: entities.PackageManagerNpm}
	}
	return nil
}

// pnpmFromModulesYAML reads the pnpm version recorded at install time, if any.
func (d *Detector) pnpmFromModulesYAML(path string) *entities.PackageManager {
	pm := &entities.PackageManager{Name: entities.PackageManagerPnpm, Agent: entities.PackageManagerPnpm}

	data, err := os.ReadFile(path)
	if err != nil {
		return pm
	}
	var modules struct {
		PackageManager string `yaml:"packageManager"`
	}
	if err = yaml.Unmarshal(data, &modules); err != nil {
		logger.Debugf("[install] Ignoring unreadable %s: %v", path, err)
		return pm
	}
	if parsed := parsePackageManagerField(modules.PackageManager); parsed != nil {
		return parsed
	}
	return pm
}

func (d *Detector) fromLockfile(dir string) *entities.PackageManager {
	for _, lock := range lockfiles {
		path := filepath.Join(dir, lock.file)
		if !exists(path) {
			continue
		}
		agent := lock.name
		if lock.name == entities.PackageManagerYarn && isYarnBerry(dir, path) {
			agent = entities.AgentYarnBerry
		}
		return &entities.PackageManager{Name: lock.name, Agent: agent}
	}
	return nil
}

func (d *Detector) fromPackageManagerField(dir string) *entities.PackageManager {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil
	}
	manifest, err := entities.ParseManifest(data)
	if err != nil {
		return nil
	}
	return parsePackageManagerField(manifest.PackageManager)
}

// parsePackageManagerField understands "<name>@<version>[+<hash>]".
func parsePackageManagerField(field string) *entities.PackageManager {
	name, version, _ := strings.Cut(strings.TrimSpace(field), "@")
	version, _, _ = strings.Cut(version, "+")

	pm := &entities.PackageManager{Name: name, Agent: name, Version: version}
	switch name {
	case entities.PackageManagerNpm, entities.PackageManagerBun, entities.PackageManagerDeno:
		return pm
	case entities.PackageManagerYarn:
		if major, ok := majorOf(version); ok && major > 1 {
			pm.Agent = entities.AgentYarnBerry
		}
		return pm
	case entities.PackageManagerPnpm:
		if major, ok := majorOf(version); ok && major < 7 {
			pm.Agent = entities.AgentPnpm6
		}
		return pm
	default:
		return nil
	}
}

func majorOf(version string) (uint64, bool) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return 0, false
	}
	return parsed.Major(), true
}

// isYarnBerry tells Yarn 2+ apart from Yarn classic by its config file or
// the metadata block only Berry writes into yarn.lock.
func isYarnBerry(dir, lockPath string) bool {
	if exists(filepath.Join(dir, yarnRCFile)) {
		return true
	}
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(yarnBerryMarker))
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		current, err := filepath.Abs(dir)
		if err != nil {
			current = dir
		}
		for {
			if !yield(current) {
				return
			}
			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
