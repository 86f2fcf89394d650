package ports

// Choice is one option offered to the user.
type Choice struct {
	Label string
	Desc  string
}

// Prompter collects input from the learner.
// This is a driving port (implemented by the terminal adapters).
// Every method returns domain.ErrAborted when the user backs out.
type Prompter interface {
	// Choose presents options and returns the selected index.
	Choose(title string, choices []Choice) (int, error)

	// Ask reads one line of free text, trimmed.
	Ask(prompt string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)

	// Pause waits for Enter.
	Pause(message string) error

	// Clear wipes the screen before the next step.
	Clear()
}

// Notifier shows a desktop notification when a long operation ends.
// This is a driven port (implemented by adapters).
type Notifier interface {
	Notify(title, message string) error
}

// Styler decorates lesson text before it is written to the terminal.
// Implementations must not add or remove lines.
type Styler interface {
	Title(s string) string
	Command(s string) string
	Explain(s string) string
	Success(s string) string
	Error(s string) string
	Hint(s string) string
	Separator() string
}
