// SPDX-License-Identifier: EPL-2.0

package batch

import "fmt"

// Command is one planned file operation.
type Command interface {
	// Description is the line shown in the plan and after execution.
	Description() string
	Execute() error
}

// Commander plans the command for a single file. A nil command means the
// file needs no work.
type Commander interface {
	Command(path string) (Command, error)
}

// CommanderFunc adapts a function to Commander.
type CommanderFunc func(path string) (Command, error)

func (f CommanderFunc) Command(path string) (Command, error) { return f(path) }

// Plan asks c for a command for every path, in order, skipping files that
// need no work. The first planning error aborts the plan.
func Plan(paths []string, c Commander) ([]Command, error) {
	var cmds []Command
	for _, p := range paths {
		cmd, err := c.Command(p)
		if err != nil {
			return nil, fmt.Errorf("planning %s: %w", p, err)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}
