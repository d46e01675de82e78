package logger

// Logger provides component-scoped structured logging.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) Info(string, string, map[string]interface{})    {}
func (NoOp) Error(string, error, map[string]interface{})    {}
func (NoOp) Warning(string, string, map[string]interface{}) {}
func (NoOp) Debug(string, string, map[string]interface{})   {}
