package phone

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trunk prefix", input: "0712345678", want: "+254712345678"},
		{name: "bare subscriber", input: "712345678", want: "+254712345678"},
		{name: "country code without plus", input: "254712345678", want: "+254712345678"},
		{name: "fully qualified", input: "+254712345678", want: "+254712345678"},
		{name: "spaces", input: "0712 345 678", want: "+254712345678"},
		{name: "dashes and parens", input: "(0712)-345-678", want: "+254712345678"},
		{name: "qualified with spaces", input: "+254 712 345 678", want: "+254712345678"},
		{name: "01 range", input: "0110123456", want: "+254110123456"},
		{name: "embedded newline", input: "0712\n345678", want: "+254712345678"},
		{name: "non-breaking space", input: "0712\u00a0345678", want: "+254712345678"},
		{name: "carriage return", input: "+254\r712345678", want: "+254712345678"},
		{name: "surrounding whitespace", input: "\t 0712345678 \n", want: "+254712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValid(tt.input))
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "too short", input: "12345"},
		{name: "empty", input: ""},
		{name: "too long", input: "07123456789"},
		{name: "letters", input: "07123abc78"},
		{name: "unsupported leading digit", input: "0812345678"},
		{name: "wrong country code", input: "+255712345678"},
		{name: "plus without country code", input: "+0712345678"},
		{name: "bare subscriber bad prefix", input: "512345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsValid(tt.input))

			got, err := Normalize(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, ErrInvalidPhone))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, InvalidMessage, verr.Message)
			assert.Equal(t, tt.input, verr.Input)
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+254 712 *** 678", Mask("+254712345678"))
	assert.Equal(t, "0712", Mask("0712"))
}
