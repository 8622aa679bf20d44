package dtype

import (
	"fmt"
	"math"
)

// EncodeFill encodes a zarr fill_value into one element's raw bytes.
// A nil value (JSON null) encodes as zero bytes. Floats additionally
// accept the JSON strings "NaN", "Infinity" and "-Infinity".
func EncodeFill(dt DType, value interface{}) ([]byte, error) {
	buf := make([]byte, dt.Size)
	if value == nil {
		return buf, nil
	}

	switch dt.Kind {
	case Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid bool fill value %v", value)
		}
		if b {
			buf[0] = 1
		}

	case Int, Uint:
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("invalid integer fill value %v", value)
		}
		putUint(dt, buf, uint64(int64(f)))

	case Float:
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case string:
			switch v {
			case "NaN":
				f = math.NaN()
			case "Infinity":
				f = math.Inf(1)
			case "-Infinity":
				f = math.Inf(-1)
			default:
				return nil, fmt.Errorf("invalid float fill value %q", v)
			}
		default:
			return nil, fmt.Errorf("invalid float fill value %v", value)
		}
		if dt.Size == 4 {
			dt.Order.PutUint32(buf, math.Float32bits(float32(f)))
		} else {
			dt.Order.PutUint64(buf, math.Float64bits(f))
		}
	}

	return buf, nil
}

func putUint(dt DType, buf []byte, u uint64) {
	switch dt.Size {
	case 1:
		buf[0] = byte(u)
	case 2:
		dt.Order.PutUint16(buf, uint16(u))
	case 4:
		dt.Order.PutUint32(buf, uint32(u))
	case 8:
		dt.Order.PutUint64(buf, u)
	}
}
