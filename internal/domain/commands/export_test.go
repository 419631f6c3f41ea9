package commands

// Pluralize exports pluralize for testing.
var Pluralize = pluralize //nolint:gochecknoglobals // test export

// NormalizeRegistryURL exports normalizeRegistryURL for testing.
var NormalizeRegistryURL = normalizeRegistryURL //nolint:gochecknoglobals // test export

// ManualInstallMessage exports manualInstallMessage for testing.
var ManualInstallMessage = manualInstallMessage //nolint:gochecknoglobals // test export

// EnsureYarnLock exports ensureYarnLock for testing.
var EnsureYarnLock = ensureYarnLock //nolint:gochecknoglobals // test export
