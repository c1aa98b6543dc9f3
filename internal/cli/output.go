package cli

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Коды выхода процесса.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // есть точки FAIL либо прогон прерван/упал
	ExitCommandError = 2 // ошибка команды, флагов или конфига
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// ExitError несёт код выхода вместе с ошибкой.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode извлекает код выхода; ошибка без кода считается ошибкой
// команды.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitCommandError
}

// Formatter — вывод результата команды в text либо json.
type Formatter struct {
	Format string
	Out    io.Writer
}

// Print отдаёт data в JSON либо вызывает текстовый рендер.
func (f Formatter) Print(data any, renderText func(w io.Writer) error) error {
	if f.Format == FormatJSON {
		encoder := json.NewEncoder(f.Out)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}

		return nil
	}

	return renderText(f.Out)
}
