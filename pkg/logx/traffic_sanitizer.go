package logx

import (
	"fmt"
	"strings"
)

type TrafficSanitizerInterface interface {
	Sanitize(input []byte) []byte
}

// WireSanitizer готовит сырой обмен с прибором к выводу в лог:
// экранирует управляющие байты и обрезает слишком длинные ответы.
type WireSanitizer struct {
	limit int
}

func NewWireSanitizer(limit int) WireSanitizer {
	return WireSanitizer{limit: limit}
}

func (s WireSanitizer) Sanitize(input []byte) []byte {
	truncated := 0
	if s.limit > 0 && len(input) > s.limit {
		truncated = len(input) - s.limit
		input = input[:s.limit]
	}

	var b strings.Builder
	b.Grow(len(input))

	for _, c := range input {
		switch {
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}

	if truncated > 0 {
		fmt.Fprintf(&b, "...(+%d bytes)", truncated)
	}

	return []byte(b.String())
}
