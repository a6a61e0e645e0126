// Package surface defines what a screen can draw and an in-memory
// implementation the terminal UI renders.
package surface

import "context"

// Level is the severity of a notification
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient message for the user
type Notification struct {
	Level   Level
	Message string
}

// Notifier shows notifications
type Notifier interface {
	Notify(level Level, message string)
}

// Field is one key/value line of a detail block
type Field struct {
	Label string
	Value string
}

// Action is a command the user can trigger with a key
type Action struct {
	Key   string
	Label string
	Run   func(ctx context.Context)
}

// Table is a list of rows. Select, when set, is called with the chosen
// row index.
type Table struct {
	Headers []string
	Rows    [][]string
	Select  func(ctx context.Context, row int)
}

// FormField is one input of a form
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	Secret      bool
	Required    bool
	Options     []Option
	Validate    func(string) error
}

// Option is one choice of a select field
type Option struct {
	Label string
	Value string
}

// Form collects input and hands it to Submit keyed by FormField.Key
type Form struct {
	Title  string
	Fields []FormField
	Submit func(ctx context.Context, values map[string]string)
	Cancel func(ctx context.Context)
}

// Surface is everything a screen can draw
type Surface interface {
	Notifier

	Reset(title string)
	Text(text string)
	Table(table Table)
	Fields(fields ...Field)
	Actions(actions ...Action)
	Form(form Form)

	ShowLoading(label string)
	HideLoading()
}
