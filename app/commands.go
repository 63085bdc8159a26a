package app

import "log/slog"

// Command is an operator request from the keyboard, the control panel or
// a headless driver.
type Command uint8

const (
	CommandNone Command = iota
	CommandStartSurvival
	CommandStartFeeding
	CommandSkipIntro
	CommandAbort
	CommandReset
	CommandUnsettle
)

var commandNames = [...]string{
	CommandNone:          "none",
	CommandStartSurvival: "start_survival",
	CommandStartFeeding:  "start_feeding",
	CommandSkipIntro:     "skip_intro",
	CommandAbort:         "abort",
	CommandReset:         "reset",
	CommandUnsettle:      "unsettle",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// Apply executes a command against the active session. It reports whether
// the command changed anything.
func (a *App) Apply(c Command) bool {
	var ok bool
	switch c {
	case CommandStartSurvival:
		ok = a.Start(Survival)
	case CommandStartFeeding:
		ok = a.Start(Feeding)
	case CommandSkipIntro:
		if s := a.Active(); s.IsInIntro() {
			s.StartFromIntro()
			ok = true
		}
	case CommandAbort:
		ok = a.Active().Abort()
	case CommandReset:
		if s := a.Active(); !s.IsIdle() {
			s.GoBackToIdle()
			ok = true
		}
	case CommandUnsettle:
		a.table.Unsettle()
		ok = true
	}
	if c != CommandNone {
		slog.Debug("command", "command", c.String(), "applied", ok)
	}
	return ok
}

// Start makes the named game active and starts it. Only one game runs on
// the table at a time, so this fails while any session is busy.
func (a *App) Start(name string) bool {
	s, ok := a.sessions[name]
	if !ok || a.Busy() {
		return false
	}
	a.active = name
	return s.StartGame()
}
