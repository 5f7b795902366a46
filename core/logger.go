package core

type (
	// Logger logs diagnostics, optionally shipping them to an error tracker.
	Logger interface {
		Enable(enabled bool)
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Alerter shows a transient message to whoever is driving this instance.
	// Fire-and-forget; no return value is consumed.
	Alerter interface {
		Alert(message string)
	}
)
