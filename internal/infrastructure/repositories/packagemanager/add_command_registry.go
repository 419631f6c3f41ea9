package packagemanager

import (
	"sort"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// AddCommandRegistry maps package manager agents to their "add" command.
type AddCommandRegistry struct {
	commands map[string]entities.InstallCommand
}

// NewAddCommandRegistry creates an empty registry.
func NewAddCommandRegistry() *AddCommandRegistry {
	return &AddCommandRegistry{
		commands: make(map[string]entities.InstallCommand),
	}
}

// NewDefaultAddCommandRegistry creates a registry holding every known agent.
func NewDefaultAddCommandRegistry() *AddCommandRegistry {
	reg := NewAddCommandRegistry()
	reg.Register(entities.PackageManagerNpm, entities.InstallCommand{Command: "npm", Args: []string{"i"}})
	reg.Register(entities.PackageManagerYarn, entities.InstallCommand{Command: "yarn", Args: []string{"add"}})
	reg.Register(entities.AgentYarnBerry, entities.InstallCommand{Command: "yarn", Args: []string{"add"}})
	reg.Register(entities.PackageManagerPnpm, entities.InstallCommand{Command: "pnpm", Args: []string{"add"}})
	reg.Register(entities.AgentPnpm6, entities.InstallCommand{Command: "pnpm", Args: []string{"add"}})
	reg.Register(entities.PackageManagerBun, entities.InstallCommand{Command: "bun", Args: []string{"add"}})
	reg.Register(entities.PackageManagerDeno, entities.InstallCommand{Command: "deno", Args: []string{"add"}})
	return reg
}

// Register adds the command of an agent, replacing any previous one.
func (r *AddCommandRegistry) Register(agent string, command entities.InstallCommand) {
	r.commands[agent] = command
}

// Get returns the command of an agent.
func (r *AddCommandRegistry) Get(agent string) (entities.InstallCommand, bool) {
	command, ok := r.commands[agent]
	if !ok {
		return entities.InstallCommand{}, false
	}
	command.Args = append([]string(nil), command.Args...)
	return command, true
}

// Agents returns the registered agent names, sorted.
func (r *AddCommandRegistry) Agents() []string {
	agents := make([]string, 0, len(r.commands))
	for agent := range r.commands {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return agents
}
