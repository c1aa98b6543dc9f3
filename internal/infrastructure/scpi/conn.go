package scpi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"smuverify/internal/domain"
	"smuverify/pkg/contextx"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/logx"
	"smuverify/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Терминатор строк на шине — LF, CR в хвосте ответов срезается.
const terminator = '\n'

// Обрезка сырого обмена в debug-логе.
const sanitizeLimit = 256

// Config — параметры одного сокетного подключения к прибору
// (LXI raw socket либо GPIB-Ethernet адаптер в режиме raw).
type Config struct {
	Name        string
	Address     string
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// Conn — построчный обмен с прибором поверх TCP. Соединением монопольно
// владеет один драйвер, обращения строго последовательные.
type Conn struct {
	name      string
	address   string
	ioTimeout time.Duration
	conn      net.Conn
	reader    *bufio.Reader
	sanitizer logx.TrafficSanitizerInterface
}

// Dial открывает соединение с прибором.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	dialer := net.Dialer{Timeout: cfg.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		metrics.BusFaults.WithLabelValues(cfg.Name).Inc()

		return nil, domain.WrapError(err, errcodes.BusFault,
			fmt.Sprintf("dial %s at %s", cfg.Name, cfg.Address))
	}

	logger(ctx).Debug("bus connected",
		logx.FieldInstrument, cfg.Name,
		logx.FieldResource, cfg.Address,
	)

	return &Conn{
		name:      cfg.Name,
		address:   cfg.Address,
		ioTimeout: cfg.IOTimeout,
		conn:      conn,
		reader:    bufio.NewReader(conn),
		sanitizer: logx.NewWireSanitizer(sanitizeLimit),
	}, nil
}

func (c *Conn) Name() string { return c.name }

// Command отправляет строку с терминатором, ответа не ждёт.
func (c *Conn) Command(ctx context.Context, cmd string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.setDeadline(); err != nil {
		return c.busError(err, fmt.Sprintf("%s: arm deadline", c.name))
	}

	if _, err := c.conn.Write(append([]byte(cmd), terminator)); err != nil {
		return c.busError(err, fmt.Sprintf("%s: write %q", c.name, cmd))
	}

	logger(ctx).Debug("bus write",
		logx.FieldInstrument, c.name,
		logx.FieldCommand, string(c.sanitizer.Sanitize([]byte(cmd))),
	)

	return nil
}

// ReadLine читает одну строку ответа до терминатора.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := c.setDeadline(); err != nil {
		return "", c.busError(err, fmt.Sprintf("%s: arm deadline", c.name))
	}

	line, err := c.reader.ReadString(terminator)
	if err != nil {
		return "", c.busError(err, fmt.Sprintf("%s: read", c.name))
	}

	line = strings.TrimRight(line, "\r\n")

	logger(ctx).Debug("bus read",
		logx.FieldInstrument, c.name,
		logx.FieldResponse, string(c.sanitizer.Sanitize([]byte(line))),
	)

	return line, nil
}

// Query — команда с ожиданием одной строки ответа.
func (c *Conn) Query(ctx context.Context, cmd string) (string, error) {
	if err := c.Command(ctx, cmd); err != nil {
		return "", err
	}

	return c.ReadLine(ctx)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) setDeadline() error {
	if c.ioTimeout <= 0 {
		return nil
	}

	return c.conn.SetDeadline(time.Now().Add(c.ioTimeout))
}

// busError относит сбой к таймауту либо обрыву и считает его в метрике.
func (c *Conn) busError(err error, message string) error {
	metrics.BusFaults.WithLabelValues(c.name).Inc()

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.WrapError(err, errcodes.BusTimeout, message)
	}

	return domain.WrapError(err, errcodes.BusFault, message)
}
