package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// ConfirmationGate asks for explicit acceptance of breaking changes.
type ConfirmationGate struct {
	terminal repositories.TerminalRepository
}

// NewConfirmationGate creates a ConfirmationGate.
func NewConfirmationGate(terminal repositories.TerminalRepository) *ConfirmationGate {
	return &ConfirmationGate{terminal: terminal}
}

// Confirm is a no-op without major bumps. Otherwise it prompts once
// (defaulting to "proceed") and returns entities.ErrUpgradeCancelled when the
// user declines or aborts. On acceptance it prints the CHANGELOG reminder
// followed by one line per major package, in the given order.
func (it *ConfirmationGate) Confirm(ctx context.Context, majors []entities.PackageRecord, assumeYes bool) error {
	if len(majors) == 0 {
		return nil
	}

	accepted, err := it.ask(ctx, len(majors), assumeYes)
	if err != nil {
		return err
	}
	if !accepted {
		return entities.ErrUpgradeCancelled
	}

	it.terminal.Warn(fmt.Sprintf("Be sure to follow the %s.", pluralize("CHANGELOG", "CHANGELOGs", len(majors))))
	for _, record := range majors {
		reportChangelog(it.terminal, record)
	}
	return nil
}

func (it *ConfirmationGate) ask(ctx context.Context, count int, assumeYes bool) (bool, error) {
	if assumeYes {
		logger.Debugf("[upgrade] Accepting %d breaking changes without prompting", count)
		return true, nil
	}

	if !it.terminal.IsInteractive() {
		it.terminal.Info("Breaking changes need confirmation, but the terminal is not interactive. Set assume_yes to proceed.")
		return false, nil
	}

	message := fmt.Sprintf(
		"%s breaking changes. Continue?",
		pluralize("One package has", "Some packages have", count),
	)
	accepted, err := it.terminal.Confirm(ctx, message, true)
	if errors.Is(err, entities.ErrUpgradeCancelled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to prompt for confirmation: %w", err)
	}
	return accepted, nil
}
