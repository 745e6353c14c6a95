package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/pkg/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want money.Cents
	}{
		{"0", 0},
		{"12.34", 1234},
		{"12.3", 1230},
		{"12", 1200},
		{"-50", -5000},
		{"-0.5", -50},
		{"+7.25", 725},
		{".99", 99},
		{" 3.00 ", 300},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "-", "1.234", "abc", "1.2.3", "12,34",
		// Signs and junk inside the fraction must not be read as digits
		"5.-1", "1.+5", "1.x", "--2",
		".", "-.", "+.",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := money.Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestParse_Overflow(t *testing.T) {
	// math.MaxInt64 cents is the largest representable amount
	got, err := money.Parse("92233720368547758.07")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(9223372036854775807), got)

	for _, in := range []string{"92233720368547758.08", "92233720368547759"} {
		t.Run(in, func(t *testing.T) {
			_, err := money.Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.34", money.Cents(1234).String())
	assert.Equal(t, "-0.05", money.Cents(-5).String())
	assert.Equal(t, "0.00", money.Zero.String())
	assert.Equal(t, "-75.00", money.Cents(-7500).String())
}

func TestAbs(t *testing.T) {
	assert.Equal(t, money.Cents(50), money.Cents(-50).Abs())
	assert.Equal(t, money.Cents(50), money.Cents(50).Abs())
	assert.True(t, money.Cents(-1).IsNegative())
	assert.False(t, money.Zero.IsNegative())
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(money.Cents(-7550))
	require.NoError(t, err)
	assert.Equal(t, `"-75.50"`, string(data))

	var c money.Cents
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, money.Cents(-7550), c)

	// Bare integers are accepted as cent counts
	require.NoError(t, json.Unmarshal([]byte(`1234`), &c))
	assert.Equal(t, money.Cents(1234), c)
}
