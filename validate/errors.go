package validate

import "fmt"

// Kind classifies why a ValidationError was raised.
type Kind int

const (
	Missing Kind = iota
	Empty
	MissingOrEmpty
	NotUnique
	LessThanZero
	LessThanOrEqualToZero
	Unrecognized
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "Missing"
	case Empty:
		return "Empty"
	case MissingOrEmpty:
		return "MissingOrEmpty"
	case NotUnique:
		return "NotUnique"
	case LessThanZero:
		return "LessThanZero"
	case LessThanOrEqualToZero:
		return "LessThanOrEqualToZero"
	case Unrecognized:
		return "Unrecognized"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Error reports a structural or semantic problem found in the input, with a
// dot-separated context path identifying where it was found (e.g.
// "jobs[2].tasks[0].toolId").
type Error struct {
	Context string
	Kind    Kind
	// Reason, if non-empty, replaces "is <Kind>." with "<Reason>." verbatim —
	// used for messages that read better as a sentence (e.g. tool references).
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Validation failed because %s %s.", e.Context, e.Reason)
	}
	return fmt.Sprintf("Validation failed because %s is %s.", e.Context, e.Kind)
}

func fail(context string, kind Kind) error {
	return &Error{Context: context, Kind: kind}
}

func failReason(context, reason string) error {
	return &Error{Context: context, Reason: reason}
}

// ConfigurationError signals that an internal validation phase was invoked out
// of order — a programming error in this codebase, not a bad input. Per
// spec §7 it is treated as a bug: it is raised as a panic, not returned as a
// normal error, and the CLI does not recover from it.
type ConfigurationError struct {
	Phase    string
	Expected string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("validate: phase %q invoked before %q completed", e.Phase, e.Expected)
}
