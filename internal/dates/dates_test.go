package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonical(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "display form", in: "15/01/2024", want: "2024-01-15"},
		{name: "already canonical", in: "2024-01-15", want: "2024-01-15"},
		{name: "empty", in: "", want: ""},
		{name: "zero sentinel", in: "0000-00-00", want: ""},
		{name: "invalid calendar date", in: "31/02/2024", wantErr: true},
		{name: "nonsense", in: "not-a-date", wantErr: true},
		{name: "too many slashes", in: "1/2/3/4", wantErr: true},
		{name: "leap day", in: "29/02/2024", want: "2024-02-29"},
		{name: "leap day non-leap year", in: "29/02/2023", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonical(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, display := range []string{
		"01/01/2020",
		"25/12/1999",
		"29/02/2024",
		"31/08/2026",
		"10/03/2024",
	} {
		canonical, err := ToCanonical(display)
		require.NoError(t, err)
		assert.Equal(t, display, ToDisplay(canonical))
	}
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, "", ToDisplay(""))
	assert.Equal(t, "", ToDisplay("0000-00-00"))
	assert.Equal(t, "", ToDisplay("garbage"))
	assert.Equal(t, "15/01/2024", ToDisplay("2024-01-15"))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1430", "14:30"},
		{"08:15:00", "08:15"},
		{"08:15:30", "08:15:30"},
		{"08:15", "08:15"},
		{"8h30", "8h30"},
		{"143", "143"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTime(tt.in), "input %q", tt.in)
	}
}
