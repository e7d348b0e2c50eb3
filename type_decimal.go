package moneymetrics

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// D converts a numeric constant into a decimal.
//
// Floats are converted using their shortest exact representation, so that
// D(0.01) is exactly 1/100.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.RequireFromString(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return decimal.NewFromInt(int64(v))
	case uint64:
		return decimal.RequireFromString(strconv.FormatUint(v, 10))
	default:
		panic("unsupported type")
	}
}
