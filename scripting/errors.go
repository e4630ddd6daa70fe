package scripting

import "fmt"

// ScriptError reports a malformed script or a sandbox/resource violation —
// both are attacker/user input conditions, not programmer defects, so they
// come back as errors rather than panics.
type ScriptError struct {
	Code    string
	Message string
	Script  string
}

func (e *ScriptError) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("[%s] %s (script: %s)", e.Code, e.Message, e.Script)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

const (
	ErrVMCreationFailed    = "VM_CREATION_FAILED"
	ErrCompileFailed       = "COMPILE_FAILED"
	ErrRuntimeFailed       = "RUNTIME_FAILED"
	ErrUnknownEntity       = "UNKNOWN_ENTITY"
	ErrUnknownComponent    = "UNKNOWN_COMPONENT"
	ErrExecutionTimeout    = "EXECUTION_TIMEOUT"
	ErrMemoryLimitExceeded = "MEMORY_LIMIT_EXCEEDED"
)

// NewScriptError builds a ScriptError with no script name attached.
func NewScriptError(code, message string) *ScriptError {
	return &ScriptError{Code: code, Message: message}
}

// withScript attaches a script name to an existing ScriptError.
func (e *ScriptError) withScript(script string) *ScriptError {
	e.Script = script
	return e
}

// WrapError wraps an underlying error (a Lua parse/runtime failure) with a
// script error code and the offending script's name.
func WrapError(err error, code, script, message string) *ScriptError {
	return &ScriptError{Code: code, Message: fmt.Sprintf("%s: %v", message, err), Script: script}
}

// IsCompileFailed reports whether err failed during parsing or compilation.
func IsCompileFailed(err error) bool {
	scriptErr, ok := err.(*ScriptError)
	return ok && scriptErr.Code == ErrCompileFailed
}
