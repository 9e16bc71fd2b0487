package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/neuroflow/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeBreakdown Type = "breakdown"
	TypeOrganize  Type = "organize"
	TypeTheme     Type = "theme"
	TypeEnergy    Type = "energy"
	TypeFocus     Type = "focus"
	TypeSurvival  Type = "survival"
)

// MaxFocusMinutes bounds /focus.
const MaxFocusMinutes = 180

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

type AddArgs struct {
	Title string
}

type TextArgs struct {
	Text string
}

type ThemeArgs struct {
	Reset bool
	Field model.ThemeField
	Color string
}

type EnergyArgs struct {
	Mode model.EnergyMode
}

type FocusArgs struct {
	Minutes int
}

type Command struct {
	Type      Type
	Raw       string
	Add       *AddArgs
	Breakdown *TextArgs
	Organize  *TextArgs
	Theme     *ThemeArgs
	Energy    *EnergyArgs
	Focus     *FocusArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeBreakdown:
		text, err := joinText(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeBreakdown, Raw: input, Breakdown: &TextArgs{Text: text}}, nil
	case TypeOrganize:
		text, err := joinText(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeOrganize, Raw: input, Organize: &TextArgs{Text: text}}, nil
	case TypeTheme:
		return parseTheme(input, args)
	case TypeEnergy:
		return parseEnergy(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeSurvival:
		return Command{Type: TypeSurvival, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title, err := joinText("add", args)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func joinText(head string, args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: head + " requires text"}
	}
	return text, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "reset") {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Reset: true}}, nil
	}
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires <field> <#color> or reset"}
	}
	field, ok := model.ParseThemeField(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme field: %s", args[0])}
	}
	if _, err := model.DefaultTheme().With(field, args[1]); err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid color: %s", args[1])}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Field: field, Color: args[1]}}, nil
}

func parseEnergy(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "energy requires low, medium or high"}
	}
	mode, err := model.ParseEnergyMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeEnergy, Raw: raw, Energy: &EnergyArgs{Mode: mode}}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "focus requires minutes"}
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil || n <= 0 || n > MaxFocusMinutes {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("focus minutes must be 1-%d", MaxFocusMinutes)}
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Minutes: n}}, nil
}
