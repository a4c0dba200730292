package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Log         func(LogArgs) (Result, error)
	Minutes     func(MinutesArgs) (Result, error)
	Habit       func(HabitArgs) (Result, error)
	ResetHabits func() (Result, error)
	Mood        func(MoodArgs) (Result, error)
	Export      func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeLog:
		if handlers.Log == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Log(*cmd.Log)
	case TypeMinutes:
		if handlers.Minutes == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Minutes(*cmd.Minutes)
	case TypeHabit:
		if handlers.Habit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Habit(*cmd.Habit)
	case TypeResetHabits:
		if handlers.ResetHabits == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.ResetHabits()
	case TypeMood:
		if handlers.Mood == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Mood(*cmd.Mood)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) *CommandError {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
