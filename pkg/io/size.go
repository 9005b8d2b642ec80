package io

// GetVarSize returns the number of bytes WriteVarUint uses to encode value.
func GetVarSize(value uint64) int {
	if value < 0xfd {
		return 1 // uint8
	}
	if value <= 0xFFFF {
		return 3 // byte + uint16
	}
	if value <= 0xFFFFFFFF {
		return 5 // byte + uint32
	}
	return 9 // byte + uint64
}

// GetSize returns the encoded size of s in bytes.
func GetSize(s encodable) int {
	var c counter
	w := NewBinWriterFromIO(&c)
	s.EncodeBinary(w)
	return int(c)
}

type counter int

func (c *counter) Write(p []byte) (int, error) {
	*c += counter(len(p))
	return len(p), nil
}
