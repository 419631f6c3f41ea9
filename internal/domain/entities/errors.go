package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManifestUnreadable is soft: the scanner treats it as an empty manifest.
	ErrManifestUnreadable = errors.New("manifest unreadable")
	// ErrNetworkUnreachable means the registry host could not be resolved.
	ErrNetworkUnreachable = errors.New("network unreachable")
	// ErrProjectNotRecognized means no in-scope package was found in the manifest.
	ErrProjectNotRecognized = errors.New("project not recognized")
	// ErrPackageResolutionFailed means at least one registry lookup failed.
	ErrPackageResolutionFailed = errors.New("package resolution failed")
	// ErrVersionNotFound means the requested version or tag left a package unresolved.
	ErrVersionNotFound = errors.New("version not found")
	// ErrInstallCommandUnsupported means the package manager has no add command.
	ErrInstallCommandUnsupported = errors.New("install command unsupported")
	// ErrInstallExecutionFailed means the package manager invocation failed.
	ErrInstallExecutionFailed = errors.New("install execution failed")
	// ErrUpgradeCancelled is the clean stop at the confirmation gate.
	ErrUpgradeCancelled = errors.New("upgrade cancelled")
)

// ResolutionError collects every package that failed to resolve in one batch.
type ResolutionError struct {
	Failures map[string]error // package name -> cause
	Names    []string         // failed names in batch order
}

// NewResolutionError builds an aggregate from per-package failures.
func NewResolutionError() *ResolutionError {
	return &ResolutionError{Failures: make(map[string]error)}
}

// Add records a failure for the given package.
func (e *ResolutionError) Add(name string, err error) {
	if _, exists := e.Failures[name]; !exists {
		e.Names = append(e.Names, name)
	}
	e.Failures[name] = err
}

// HasFailures reports whether any package failed.
func (e *ResolutionError) HasFailures() bool {
	return len(e.Names) > 0
}

func (e *ResolutionError) Error() string {
	messages := make([]string, 0, len(e.Names))
	for _, name := range e.Names {
		messages = append(messages, fmt.Sprintf("%s: %v", name, e.Failures[name]))
	}
	return fmt.Sprintf("%v (%d failed): %s", ErrPackageResolutionFailed, len(e.Names), strings.Join(messages, "; "))
}

// Unwrap exposes the sentinel and every individual cause to errors.Is/As.
func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Names)+1)
	errs = append(errs, ErrPackageResolutionFailed)
	for _, name := range e.Names {
		errs = append(errs, e.Failures[name])
	}
	return errs
}
