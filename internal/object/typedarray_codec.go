package object

import (
	"encoding/binary"
	"math"
)

// readTypedElement/writeTypedElement implement the element<->byte-store
// codec shared by TypedArray indexed access and DataView's get/set methods
// (spec §3's ArrayBuffer byte store). Values are stored little-endian,
// matching every mainstream host's native TypedArray byte order.
func readTypedElement(buf []byte, offset int, kind TypedArrayKind) float64 {
	size := kind.ElementSize()
	if offset < 0 || offset+size > len(buf) {
		return 0
	}
	switch kind {
	case KindInt8:
		return float64(int8(buf[offset]))
	case KindUint8, KindUint8Clamped:
		return float64(buf[offset])
	case KindInt16:
		return float64(int16(binary.LittleEndian.Uint16(buf[offset:])))
	case KindUint16:
		return float64(binary.LittleEndian.Uint16(buf[offset:]))
	case KindInt32:
		return float64(int32(binary.LittleEndian.Uint32(buf[offset:])))
	case KindUint32:
		return float64(binary.LittleEndian.Uint32(buf[offset:]))
	case KindFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])))
	case KindFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[offset:]))
	default:
		return 0
	}
}

func writeTypedElement(buf []byte, offset int, kind TypedArrayKind, v float64) {
	size := kind.ElementSize()
	if offset < 0 || offset+size > len(buf) {
		return
	}
	switch kind {
	case KindInt8:
		buf[offset] = byte(int8(v))
	case KindUint8:
		buf[offset] = byte(uint8(v))
	case KindUint8Clamped:
		buf[offset] = clampUint8(v)
	case KindInt16:
		binary.LittleEndian.PutUint16(buf[offset:], uint16(int16(v)))
	case KindUint16:
		binary.LittleEndian.PutUint16(buf[offset:], uint16(v))
	case KindInt32:
		binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(v)))
	case KindUint32:
		binary.LittleEndian.PutUint32(buf[offset:], uint32(v))
	case KindFloat32:
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(float32(v)))
	case KindFloat64:
		binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(v))
	}
}

// clampUint8 implements the Uint8Clamped rounding rule: clamp to [0,255],
// round half to even on an exact .5 boundary.
func clampUint8(v float64) byte {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	f := math.Floor(v)
	diff := v - f
	switch {
	case diff < 0.5:
		return byte(f)
	case diff > 0.5:
		return byte(f + 1)
	case int64(f)%2 == 0:
		return byte(f)
	default:
		return byte(f + 1)
	}
}
