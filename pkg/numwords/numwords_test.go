package numwords

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{10, "Ten"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{105, "One Hundred Five"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1205, "One Thousand Two Hundred Five"},
		{15000, "Fifteen Thousand"},
		{200300, "Two Hundred Thousand Three Hundred"},
		{1200000, "One Million Two Hundred Thousand"},
		{3000000017, "Three Billion Seventeen"},
		{1001001001, "One Billion One Million One Thousand One"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Uint(tt.in))
		})
	}
}

func TestConvert_RoundsToWholeUnits(t *testing.T) {
	got, err := Convert(decimal.RequireFromString("3399.5"))
	require.NoError(t, err)
	assert.Equal(t, "Three Thousand Four Hundred", got)

	got, err = Convert(decimal.RequireFromString("3399.49"))
	require.NoError(t, err)
	assert.Equal(t, "Three Thousand Three Hundred Ninety Nine", got)
}

func TestConvert_Zero(t *testing.T) {
	got, err := Convert(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "Zero", got)
}

func TestConvert_Negative(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestConvert_NoDoubleSpaces(t *testing.T) {
	for _, n := range []int64{1000100, 2000000001, 90010, 500000} {
		got, err := Convert(decimal.NewFromInt(n))
		require.NoError(t, err)
		assert.NotContains(t, got, "  ")
	}
}
