package prompter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"smuverify/internal/domain"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/metrics"
)

// Console показывает оператору шаг ручной коммутации и блокируется до
// Enter. Отмена контекста снимает блокировку; горутина чтения при этом
// доживает до следующей строки либо конца ввода.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *Console) Prompt(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	metrics.OperatorPrompts.Inc()

	fmt.Fprintf(c.out, "\n%s\n[Enter] — продолжить, Ctrl+C — прервать: ", message)

	done := make(chan error, 1)

	go func() {
		_, err := c.in.ReadString('\n')
		done <- err
	}()

	select {
	case err := <-done:
		if errors.Is(err, io.EOF) {
			// Закрытый stdin — оператора нет, продолжать нельзя.
			return domain.NewError(errcodes.OperatorAbort, "operator input closed")
		}

		if err != nil {
			return domain.WrapError(err, errcodes.OperatorAbort, "operator input")
		}

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
