package entities

const (
	PackageManagerNpm  = "npm"
	PackageManagerYarn = "yarn"
	PackageManagerPnpm = "pnpm"
	PackageManagerBun  = "bun"
	PackageManagerDeno = "deno"

	AgentYarnBerry = "yarn@berry"
	AgentPnpm6     = "pnpm@6"
)

// PackageManager identifies the tool that owns the project's lock file.
// Name is the executable, Agent selects the command dialect.
type PackageManager struct {
	Name    string
	Agent   string
	Version string // from the "packageManager" field, when known
}

// DefaultPackageManager is used when detection finds nothing.
func DefaultPackageManager() PackageManager {
	return PackageManager{Name: PackageManagerNpm, Agent: PackageManagerNpm}
}
