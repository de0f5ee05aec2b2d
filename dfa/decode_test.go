package dfa

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []uint16
		want  []int16
	}{
		{
			name:  "empty",
			input: nil,
			want:  []int16{},
		},
		{
			name:  "single run",
			input: []uint16{3, 9},
			want:  []int16{9, 9, 9},
		},
		{
			name:  "runs keep order",
			input: []uint16{1, 2, 3, 9},
			want:  []int16{2, 9, 9, 9},
		},
		{
			name:  "0xFFFF is minus one",
			input: []uint16{2, 0xffff, 1, 4},
			want:  []int16{-1, -1, 4},
		},
		{
			name:  "zero count emits nothing",
			input: []uint16{0, 7, 1, 1},
			want:  []int16{1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Unpack(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnpackChars(t *testing.T) {
	t.Parallel()
	got, err := UnpackChars([]uint16{1, 'a', 2, 0xffff})
	require.NoError(t, err)
	assert.Equal(t, []uint16{'a', 0xffff, 0xffff}, got)
}

func TestUnpack_OddLength(t *testing.T) {
	t.Parallel()
	for _, input := range [][]uint16{{1}, {1, 2, 3}} {
		_, err := Unpack(input)
		var mte *MalformedTableError
		require.True(t, errors.As(err, &mte), "input %v", input)
		assert.Equal(t, len(input), mte.Length)

		_, err = UnpackChars(input)
		assert.True(t, errors.As(err, &mte))
	}

	assert.Panics(t, func() { MustUnpack([]uint16{1}) })
	assert.Panics(t, func() { MustUnpackChars([]uint16{1}) })
	assert.NotPanics(t, func() { MustUnpack([]uint16{1, 1}) })
}

func TestUnpack_RunLengthProperty(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		pairs := rng.Intn(20)
		var input []uint16
		var want []uint16
		for i := 0; i < pairs; i++ {
			count := uint16(1 + rng.Intn(50))
			value := uint16(rng.Intn(1 << 16))
			input = append(input, count, value)
			for j := uint16(0); j < count; j++ {
				want = append(want, value)
			}
		}

		got, err := UnpackChars(input)
		require.NoError(t, err)
		assert.Len(t, got, len(want))
		if len(want) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, want, got)
		}
	}
}

func TestUnits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []uint16{1, 2, 3, 9}, Units("\u0001\u0002\u0003\u0009"))
	assert.Equal(t, []uint16{2, 0xffff}, Units("\u0002\uffff"))

	data := MustUnpack(Units("\u0001\u0002\u0003\u0009"))
	assert.Equal(t, []int16{2, 9, 9, 9}, data)
}

func TestMalformedTableError_Message(t *testing.T) {
	t.Parallel()
	raw := &MalformedTableError{Length: 3, State: -1, Reason: "odd number of code units"}
	assert.Equal(t, "malformed DFA table: odd number of code units (length 3)", raw.Error())

	named := &MalformedTableError{Table: "transition", State: 4, Reason: "target 9 is not a state"}
	assert.Equal(t, "malformed DFA table transition at state 4: target 9 is not a state", named.Error())
}
