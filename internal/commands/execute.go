package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add       func(AddArgs) (Result, error)
	Breakdown func(TextArgs) (Result, error)
	Organize  func(TextArgs) (Result, error)
	Theme     func(ThemeArgs) (Result, error)
	Energy    func(EnergyArgs) (Result, error)
	Focus     func(FocusArgs) (Result, error)
	Survival  func() (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeBreakdown:
		if handlers.Breakdown == nil {
			return Result{}, missing("breakdown")
		}
		return handlers.Breakdown(*cmd.Breakdown)
	case TypeOrganize:
		if handlers.Organize == nil {
			return Result{}, missing("organize")
		}
		return handlers.Organize(*cmd.Organize)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme(*cmd.Theme)
	case TypeEnergy:
		if handlers.Energy == nil {
			return Result{}, missing("energy")
		}
		return handlers.Energy(*cmd.Energy)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, missing("focus")
		}
		return handlers.Focus(*cmd.Focus)
	case TypeSurvival:
		if handlers.Survival == nil {
			return Result{}, missing("survival")
		}
		return handlers.Survival()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
