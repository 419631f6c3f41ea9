package entities

import "strings"

// InstallCommand is an "add" command template: executable plus fixed arguments.
type InstallCommand struct {
	Command string
	Args    []string
}

// ArgsFor returns the template arguments followed by one install spec per record.
func (c InstallCommand) ArgsFor(records []PackageRecord) []string {
	args := make([]string, 0, len(c.Args)+len(records))
	args = append(args, c.Args...)
	for _, record := range records {
		args = append(args, record.InstallSpec())
	}
	return args
}

// ManualCommand renders the single command a user can run by hand to install
// every given group at its resolved target version.
func (c InstallCommand) ManualCommand(groups ...[]PackageRecord) string {
	parts := []string{c.Command}
	parts = append(parts, c.Args...)
	for _, group := range groups {
		for _, record := range group {
			parts = append(parts, record.ManualSpec())
		}
	}
	return strings.Join(parts, " ")
}
