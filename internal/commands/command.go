package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeLog         Type = "log"
	TypeMinutes     Type = "minutes"
	TypeHabit       Type = "habit"
	TypeResetHabits Type = "reset-habits"
	TypeMood        Type = "mood"
	TypeExport      Type = "export"
)

// Types lists every palette command in the order help shows them.
var Types = []Type{TypeLog, TypeMinutes, TypeHabit, TypeResetHabits, TypeMood, TypeExport}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type LogArgs struct {
	Title string
	Tags  string
}

type MinutesArgs struct {
	Minutes int
}

type HabitArgs struct {
	Key string
}

type MoodArgs struct {
	Mood       string
	Reflection string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type    Type
	Raw     string
	Log     *LogArgs
	Minutes *MinutesArgs
	Habit   *HabitArgs
	Mood    *MoodArgs
	Export  *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeLog:
		return parseLog(input, args), nil
	case TypeMinutes:
		return parseMinutes(input, args)
	case TypeHabit:
		return parseHabit(input, args)
	case TypeResetHabits:
		return Command{Type: TypeResetHabits, Raw: input}, nil
	case TypeMood:
		return parseMood(input, args)
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseLog accepts an optional title; a tags:a,b token anywhere is lifted out.
func parseLog(raw string, args []string) Command {
	var title []string
	tags := ""
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "tags:") {
			tags = strings.TrimSpace(arg[len("tags:"):])
			continue
		}
		title = append(title, arg)
	}
	return Command{Type: TypeLog, Raw: raw, Log: &LogArgs{Title: strings.Join(title, " "), Tags: tags}}
}

func parseMinutes(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "minutes requires a single number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("minutes must be a positive number, got %q", args[0])}
	}
	return Command{Type: TypeMinutes, Raw: raw, Minutes: &MinutesArgs{Minutes: n}}, nil
}

func parseHabit(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "habit requires a key"}
	}
	return Command{Type: TypeHabit, Raw: raw, Habit: &HabitArgs{Key: strings.ToLower(args[0])}}, nil
}

func parseMood(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mood requires a mood"}
	}
	return Command{Type: TypeMood, Raw: raw, Mood: &MoodArgs{Mood: strings.ToLower(args[0]), Reflection: strings.Join(args[1:], " ")}}, nil
}

// Usage is the one-line syntax shown in the palette help.
func Usage(t Type) string {
	switch t {
	case TypeLog:
		return "/log <title> [tags:a,b]"
	case TypeMinutes:
		return "/minutes <n>"
	case TypeHabit:
		return "/habit <key>"
	case TypeResetHabits:
		return "/reset-habits"
	case TypeMood:
		return "/mood <mood> [reflection]"
	case TypeExport:
		return "/export [path]"
	default:
		return ""
	}
}
