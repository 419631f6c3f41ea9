package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DeclaredDependency is one name/specifier pair from a manifest mapping.
type DeclaredDependency struct {
	Name    string
	Version string
}

// Manifest holds the dependency mappings of a package.json in declaration order.
type Manifest struct {
	Dependencies    []DeclaredDependency
	DevDependencies []DeclaredDependency
	PackageManager  string // raw "packageManager" field, e.g. "pnpm@9.1.0"
}

// Declares reports whether name appears in either dependency mapping.
func (m *Manifest) Declares(name string) bool {
	if m == nil {
		return false
	}
	for _, group := range [][]DeclaredDependency{m.Dependencies, m.DevDependencies} {
		for _, dep := range group {
			if dep.Name == name {
				return true
			}
		}
	}
	return false
}

// ParseManifest decodes a package.json document. Key order of the dependency
// mappings is preserved; entries whose value is not a string are skipped.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw struct {
		Dependencies    json.RawMessage `json:"dependencies"`
		DevDependencies json.RawMessage `json:"devDependencies"`
		PackageManager  json.RawMessage `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	deps, err := parseDependencyMap(raw.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	devDeps, err := parseDependencyMap(raw.DevDependencies)
	if err != nil {
		return nil, fmt.Errorf("invalid devDependencies: %w", err)
	}

	manifest := &Manifest{Dependencies: deps, DevDependencies: devDeps}
	var packageManager string
	if json.Unmarshal(raw.PackageManager, &packageManager) == nil {
		manifest.PackageManager = packageManager
	}
	return manifest, nil
}

func parseDependencyMap(raw json.RawMessage) ([]DeclaredDependency, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected an object")
	}

	var result []DeclaredDependency
	for decoder.More() {
		keyToken, keyErr := decoder.Token()
		if keyErr != nil {
			return nil, keyErr
		}
		name, _ := keyToken.(string)

		var value any
		if decodeErr := decoder.Decode(&value); decodeErr != nil {
			return nil, decodeErr
		}
		version, ok := value.(string)
		if !ok {
			continue
		}
		result = append(result, DeclaredDependency{Name: name, Version: version})
	}
	return result, nil
}

// CollectPackageRecords applies the platform eligibility filter to every
// declared dependency and returns one record per eligible package, with the
// requested version as the target placeholder. Dependencies come before
// devDependencies; a name seen twice keeps its first declaration.
func CollectPackageRecords(manifest *Manifest, requested string, platform Platform) []PackageRecord {
	if manifest == nil {
		return nil
	}

	seen := make(map[string]bool)
	var records []PackageRecord
	collect := func(group []DeclaredDependency, isDev bool) {
		for _, dep := range group {
			if seen[dep.Name] || !platform.IsSupported(dep.Name, dep.Version) {
				continue
			}
			seen[dep.Name] = true
			records = append(records, PackageRecord{
				Name:            dep.Name,
				CurrentVersion:  dep.Version,
				TargetVersion:   requested,
				IsDevDependency: isDev,
			})
		}
	}
	collect(manifest.Dependencies, false)
	collect(manifest.DevDependencies, true)
	return records
}
