// Package progress carries user-facing progress messages from the long
// running walks to whatever front end is driving them.
package progress

// Level indicates the severity/type of a progress message.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Event represents a single progress update.
type Event struct {
	Message string
	Level   Level
}

// Func receives progress events. A nil Func discards them.
type Func func(Event)

// Emit sends an event to f if f is not nil.
func (f Func) Emit(message string, level Level) {
	if f != nil {
		f(Event{Message: message, Level: level})
	}
}
