package instrument

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"smuverify/internal/domain"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/metrics"
)

// Выдержка между TRIG SGL и чтением строки показания.
const hp3458aReadDelay = 20 * time.Millisecond

// Первый числовой токен в строке показания 3458A.
var hp3458aNumber = regexp.MustCompile(`[-+]?\d+(?:\.\d*)?(?:[Ee][-+]?\d+)?`) //nolint:gochecknoglobals

// HP3458A — эталонный мультиметр. Командный язык прибора не SCPI:
// конфигурация PRESET NORM / DCV / NDIG / RANGE / NPLC, измерение по
// TRIG SGL с чтением строки. READ? прибору не посылается.
type HP3458A struct {
	bus Bus
}

func NewHP3458A(bus Bus) *HP3458A {
	return &HP3458A{bus: bus}
}

func (h *HP3458A) Reset(ctx context.Context) error {
	if err := h.bus.Command(ctx, "PRESET NORM"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	// Старые прошивки не знают части команд, их отказ не фатален.
	tryCommand(ctx, h.bus, "END ALWAYS")
	tryCommand(ctx, h.bus, "AZERO ON")

	return nil
}

// Identify пробует ID?, затем IDN?; прибор без ответа представляется
// моделью.
func (h *HP3458A) Identify(ctx context.Context) (string, error) {
	for _, cmd := range []string{"ID?", "IDN?"} {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		idn, err := h.bus.Query(ctx, cmd)
		if err != nil {
			continue
		}

		if idn = strings.TrimSpace(idn); idn != "" {
			return idn, nil
		}
	}

	return "HP3458A", nil
}

// ConfigDCV готовит измерение постоянного напряжения: фиксированный
// диапазон под ожидаемую величину, автоноль включён, вход Hi-Z.
func (h *HP3458A) ConfigDCV(ctx context.Context, expected, nplc float64) error {
	return h.configure(ctx, "DCV", dcvRange(expected), nplc, "FIXEDZ OFF")
}

// ConfigDCI готовит измерение постоянного тока; входной импеданс
// фиксированный.
func (h *HP3458A) ConfigDCI(ctx context.Context, expected, nplc float64) error {
	return h.configure(ctx, "DCI", dciRange(expected), nplc, "FIXEDZ ON")
}

func (h *HP3458A) configure(ctx context.Context, fn string, rng, nplc float64, fixedz string) error {
	steps := []string{
		"PRESET NORM",
		fn,
		"NDIG 8",
		"TRIG SGL",
		"RANGE " + formatFloat(rng),
		"NPLC " + formatFloat(nplc),
		"AZERO ON",
		fixedz,
	}

	for _, cmd := range steps {
		if err := h.bus.Command(ctx, cmd); err != nil {
			return fmt.Errorf("config %s: %w", fn, err)
		}
	}

	return nil
}

// Read запускает одиночное измерение и разбирает строку показания.
func (h *HP3458A) Read(ctx context.Context) (float64, error) {
	if err := h.bus.Command(ctx, "TRIG SGL"); err != nil {
		return 0, err
	}

	if err := pause(ctx, hp3458aReadDelay); err != nil {
		return 0, err
	}

	line, err := h.bus.ReadLine(ctx)
	if err != nil {
		return 0, err
	}

	metrics.SamplesTaken.WithLabelValues(NameHP3458A).Inc()

	token := hp3458aNumber.FindString(line)
	if token == "" {
		return 0, domain.NewError(errcodes.ParseFault,
			fmt.Sprintf("hp3458a: no numeric token in %q", line))
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ParseFault,
			fmt.Sprintf("hp3458a: token %q", token))
	}

	return v, nil
}

func (h *HP3458A) Close() error {
	return h.bus.Close()
}

// Фиксированные диапазоны DCV: минимально достаточный под величину.
func dcvRange(v float64) float64 {
	switch v = math.Abs(v); {
	case v <= 0.120:
		return 0.120
	case v <= 1.2:
		return 1.2
	case v <= 12.0:
		return 12.0
	case v <= 120.0:
		return 120.0
	default:
		return 1050.0
	}
}

// Фиксированные диапазоны DCI.
func dciRange(i float64) float64 {
	switch i = math.Abs(i); {
	case i <= 120e-9:
		return 120e-9
	case i <= 1.2e-6:
		return 1.2e-6
	case i <= 12e-6:
		return 12e-6
	case i <= 120e-6:
		return 120e-6
	case i <= 1.2e-3:
		return 1.2e-3
	case i <= 12e-3:
		return 12e-3
	case i <= 120e-3:
		return 120e-3
	default:
		return 1.05
	}
}

