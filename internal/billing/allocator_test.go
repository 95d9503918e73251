package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   *string
		want  Bucket
	}{
		{
			name:  "no end date stays in start month",
			start: "2024-03-10",
			want:  Bucket{Month: 3, Year: 2024},
		},
		{
			name:  "end before cutoff stays in start month",
			start: "2024-03-10",
			end:   strptr("2024-03-25"),
			want:  Bucket{Month: 3, Year: 2024},
		},
		{
			name:  "end after cutoff advances one month",
			start: "2024-03-10",
			end:   strptr("2024-04-02"),
			want:  Bucket{Month: 4, Year: 2024},
		},
		{
			name:  "end on the 26th advances",
			start: "2024-03-10",
			end:   strptr("2024-03-26"),
			want:  Bucket{Month: 4, Year: 2024},
		},
		{
			name:  "december wraps to january without a year bump",
			start: "2024-12-10",
			end:   strptr("2025-01-05"),
			want:  Bucket{Month: 1, Year: 2024},
		},
		{
			name:  "empty end date stays in start month",
			start: "2024-01-15",
			end:   strptr(""),
			want:  Bucket{Month: 1, Year: 2024},
		},
		{
			name:  "unparseable end date stays in start month",
			start: "2024-01-15",
			end:   strptr("soon"),
			want:  Bucket{Month: 1, Year: 2024},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocateBadStartDate(t *testing.T) {
	_, err := Allocate("10/03/2024", nil)
	assert.ErrorIs(t, err, ErrBadStartDate)
}
