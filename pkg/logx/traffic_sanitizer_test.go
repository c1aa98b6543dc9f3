package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"smuverify/pkg/logx"
)

func TestWireSanitizerSanitize(t *testing.T) {
	rq := require.New(t)

	sanitizer := logx.NewWireSanitizer(32)

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Plain reading passes through",
			input:  []byte("+2.000013E+01"),
			output: []byte("+2.000013E+01"),
		},
		{
			name:   "Terminators escaped",
			input:  []byte("TRIG SGL\r\n"),
			output: []byte(`TRIG SGL\r\n`),
		},
		{
			name:   "Control bytes escaped",
			input:  []byte{0x1b, 'O', 'K', 0x00},
			output: []byte(`\x1bOK\x00`),
		},
		{
			name:   "Long reply truncated",
			input:  []byte("+2.000013E+01,+1.234567E+00,+9.910000E+37,+1.797600E+03,+2.15E+04"),
			output: []byte(`+2.000013E+01,+1.234567E+00,+9.9...(+33 bytes)`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := sanitizer.Sanitize(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}

func TestNopTrafficSanitizer(t *testing.T) {
	rq := require.New(t)

	input := []byte("OUT 20 V\r\n")

	rq.Equal(input, logx.NewNopTrafficSanitizer().Sanitize(input))
}
