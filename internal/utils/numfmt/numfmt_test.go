package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "999", want: "999"},
		{in: "1000", want: "1,000"},
		{in: "1234567.891", want: "1,234,567.891"},
		{in: "-100000", want: "-100,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Group(tt.in))
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "68,787.00", Fixed(68787, 2))
	assert.Equal(t, "1,994.89", Fixed(1994.89, 2))
	assert.Equal(t, "84.6", Fixed(84.62, 1))
}
