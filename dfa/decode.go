package dfa

import "unicode/utf16"

// Units converts a string literal holding an encoded table into its
// 16-bit code units. Generated recognizers embed tables as strings such as
// "\u0001\u0002\u0003\u0009" because large composite literals are slow to
// compile.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Unpack expands a run-length encoded table of (count, value) pairs into
// signed 16-bit values: "\1\2\3\9" becomes {2, 9, 9, 9}.
// It is used for the transition, accept, eot, eof and special tables.
func Unpack(units []uint16) ([]int16, error) {
	return unpack(units, func(v uint16) int16 { return int16(v) })
}

// UnpackChars expands a run-length encoded table into unsigned 16-bit
// (character width) values. It is used for the min and max tables.
func UnpackChars(units []uint16) ([]uint16, error) {
	return unpack(units, func(v uint16) uint16 { return v })
}

// MustUnpack is like Unpack but panics on malformed input. It simplifies
// initialization of package-level tables.
func MustUnpack(units []uint16) []int16 {
	data, err := Unpack(units)
	if err != nil {
		panic(err)
	}
	return data
}

// MustUnpackChars is like UnpackChars but panics on malformed input.
func MustUnpackChars(units []uint16) []uint16 {
	data, err := UnpackChars(units)
	if err != nil {
		panic(err)
	}
	return data
}

func unpack[T int16 | uint16](units []uint16, conv func(uint16) T) ([]T, error) {
	if len(units)%2 != 0 {
		return nil, &MalformedTableError{Length: len(units), Reason: "odd number of code units"}
	}

	// walk once to size the output
	size := 0
	for i := 0; i < len(units); i += 2 {
		size += int(units[i])
	}

	data := make([]T, 0, size)
	for i := 0; i < len(units); i += 2 {
		n, v := units[i], conv(units[i+1])
		for j := uint16(0); j < n; j++ {
			data = append(data, v)
		}
	}
	return data, nil
}
