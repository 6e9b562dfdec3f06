package i

// Logger writes levelled, preformatted messages.
type Logger interface {
	Info(message string)
	Warning(message string)
	Error(message string)
	Debug(message string)
}
