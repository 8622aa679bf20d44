package dtype

import (
	"fmt"
	"math"
	"reflect"
)

// Convert converts a raw C-order buffer of numElements elements into dest.
// dest must be a pointer to a slice whose element type matches the dtype's
// Go type (see GoType). The slice is reallocated to exactly numElements.
func Convert(dt DType, raw []byte, numElements int, dest interface{}) error {
	if need := numElements * dt.Size; len(raw) < need {
		return fmt.Errorf("short buffer: have %d bytes, need %d", len(raw), need)
	}

	switch out := dest.(type) {
	case *[]bool:
		if dt.Kind != Bool {
			return convertMismatch(dt, dest)
		}
		vals := make([]bool, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = raw[i] != 0
		}
		*out = vals

	case *[]int8:
		if dt.Kind != Int || dt.Size != 1 {
			return convertMismatch(dt, dest)
		}
		vals := make([]int8, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = int8(raw[i])
		}
		*out = vals

	case *[]uint8:
		if !(dt.Kind == Uint && dt.Size == 1) {
			return convertMismatch(dt, dest)
		}
		vals := make([]uint8, numElements)
		copy(vals, raw[:numElements])
		*out = vals

	case *[]int16:
		if dt.Kind != Int || dt.Size != 2 {
			return convertMismatch(dt, dest)
		}
		vals := make([]int16, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = int16(dt.Order.Uint16(raw[i*2:]))
		}
		*out = vals

	case *[]uint16:
		if dt.Kind != Uint || dt.Size != 2 {
			return convertMismatch(dt, dest)
		}
		vals := make([]uint16, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = dt.Order.Uint16(raw[i*2:])
		}
		*out = vals

	case *[]int32:
		if dt.Kind != Int || dt.Size != 4 {
			return convertMismatch(dt, dest)
		}
		vals := make([]int32, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = int32(dt.Order.Uint32(raw[i*4:]))
		}
		*out = vals

	case *[]uint32:
		if dt.Kind != Uint || dt.Size != 4 {
			return convertMismatch(dt, dest)
		}
		vals := make([]uint32, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = dt.Order.Uint32(raw[i*4:])
		}
		*out = vals

	case *[]int64:
		if dt.Kind != Int || dt.Size != 8 {
			return convertMismatch(dt, dest)
		}
		vals := make([]int64, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = int64(dt.Order.Uint64(raw[i*8:]))
		}
		*out = vals

	case *[]uint64:
		if dt.Kind != Uint || dt.Size != 8 {
			return convertMismatch(dt, dest)
		}
		vals := make([]uint64, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = dt.Order.Uint64(raw[i*8:])
		}
		*out = vals

	case *[]float32:
		if dt.Kind != Float || dt.Size != 4 {
			return convertMismatch(dt, dest)
		}
		vals := make([]float32, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = math.Float32frombits(dt.Order.Uint32(raw[i*4:]))
		}
		*out = vals

	case *[]float64:
		if dt.Kind != Float || dt.Size != 8 {
			return convertMismatch(dt, dest)
		}
		vals := make([]float64, numElements)
		for i := 0; i < numElements; i++ {
			vals[i] = math.Float64frombits(dt.Order.Uint64(raw[i*8:]))
		}
		*out = vals

	default:
		return fmt.Errorf("unsupported destination type %T", dest)
	}

	return nil
}

func convertMismatch(dt DType, dest interface{}) error {
	return fmt.Errorf("dtype %v/%d does not convert to %T", dt.Kind, dt.Size, dest)
}

// Decode converts a raw buffer into the dtype's natural Go slice type.
func Decode(dt DType, raw []byte, numElements int) (interface{}, error) {
	goType, err := dt.GoType()
	if err != nil {
		return nil, err
	}

	destPtr := reflect.New(reflect.SliceOf(goType))
	if err := Convert(dt, raw, numElements, destPtr.Interface()); err != nil {
		return nil, err
	}
	return destPtr.Elem().Interface(), nil
}
