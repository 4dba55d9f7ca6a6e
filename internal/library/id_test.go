package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"0007", 7, false},
		{"0", 0, false},
		{"9999", 9999, false},
		{" 12 ", 12, false},
		{"10000", 0, true},
		{"", 0, true},
		{"-1", 0, true},
		{"7a", 0, true},
		{"３", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPadID(t *testing.T) {
	assert.Equal(t, "0000", PadID(0))
	assert.Equal(t, "0007", PadID(7))
	assert.Equal(t, "9999", PadID(9999))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("0001_學生自治會章程.txt"))
	assert.True(t, ValidName("0001_.txt"))
	assert.False(t, ValidName("001_章程.txt"))
	assert.False(t, ValidName("0001章程.txt"))
	assert.False(t, ValidName("0001_章程.TXT"))
	assert.False(t, ValidName("0001_章程.md"))
}

func TestResolve(t *testing.T) {
	manifest := []string{"0001_a.txt", "0010_b.txt", "0010_c.txt", "0100_d.md"}

	name, err := Resolve(manifest, 10)
	require.NoError(t, err)
	assert.Equal(t, "0010_b.txt", name, "first match wins")

	name, err = Resolve(manifest, 1)
	require.NoError(t, err)
	assert.Equal(t, "0001_a.txt", name)

	_, err = Resolve(manifest, 100)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(manifest, -1)
	assert.ErrorIs(t, err, ErrInvalidID)
}
