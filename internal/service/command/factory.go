package command

import (
	"github.com/sandevgo/anjali/internal/core"
)

func NewCommands(deps Deps) []core.Command {
	var cmds []core.Command

	if deps.Session != nil {
		cmds = append(cmds, NewMoodCommand(deps.Session), NewSpeakCommand(deps.Session))
	}
	if deps.Briefing != nil && deps.Session != nil {
		cmds = append(cmds, NewBriefingCommand(deps.Briefing, deps.Session))
	}
	if deps.Status != nil {
		cmds = append(cmds, NewStatusCommand(deps.Status))
	}
	if deps.Memory != nil {
		cmds = append(cmds,
			NewMemoriesCommand(deps.Memory),
			NewForgetCommand(deps.Memory),
			NewClearCommand(deps.Memory),
		)
	}
	if deps.Facts != nil {
		cmds = append(cmds, NewRememberCommand(deps.Facts), NewRecallCommand(deps.Facts))
	}
	if deps.Model != nil {
		cmds = append(cmds, NewModelCommand(deps.Model))
	}
	return cmds
}
