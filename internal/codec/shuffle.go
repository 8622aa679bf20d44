package codec

// Shuffle implements the numcodecs byte shuffle filter.
// Shuffled data groups byte positions together (all byte 0s, then all
// byte 1s, ...) to improve compression of similar-magnitude values.
type Shuffle struct {
	elemSize int
}

func (*Shuffle) ID() string { return "shuffle" }

// Decode reverses the shuffle transformation.
func (f *Shuffle) Decode(input []byte) ([]byte, error) {
	if f.elemSize <= 1 {
		// Single-byte elements are unaffected by shuffling.
		return input, nil
	}

	numBytes := len(input)
	numElems := numBytes / f.elemSize
	if numElems == 0 {
		return input, nil
	}

	output := make([]byte, numBytes)
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}
	return output, nil
}
