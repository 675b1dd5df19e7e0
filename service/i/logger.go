package i

// Logger is the minimal leveled logger the services depend on.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
