package fitcodec

// FIT base type bytes. The high bit tags multi-byte (endian-sensitive)
// types; the low five bits index the canonical type table.
const (
	BaseEnum    uint8 = 0x00
	BaseSint8   uint8 = 0x01
	BaseUint8   uint8 = 0x02
	BaseSint16  uint8 = 0x83
	BaseUint16  uint8 = 0x84
	BaseSint32  uint8 = 0x85
	BaseUint32  uint8 = 0x86
	BaseString  uint8 = 0x07
	BaseFloat32 uint8 = 0x88
	BaseFloat64 uint8 = 0x89
	BaseUint8z  uint8 = 0x0A
	BaseUint16z uint8 = 0x8B
	BaseUint32z uint8 = 0x8C
	BaseByte    uint8 = 0x0D
	BaseSint64  uint8 = 0x8E
	BaseUint64  uint8 = 0x8F
	BaseUint64z uint8 = 0x90
)

type baseSpec struct {
	name          string
	size          int
	zeroIsInvalid bool
}

var baseSpecs = map[uint8]baseSpec{
	BaseEnum:    {name: "enum", size: 1},
	BaseSint8:   {name: "sint8", size: 1},
	BaseUint8:   {name: "uint8", size: 1},
	BaseSint16:  {name: "sint16", size: 2},
	BaseUint16:  {name: "uint16", size: 2},
	BaseSint32:  {name: "sint32", size: 4},
	BaseUint32:  {name: "uint32", size: 4},
	BaseString:  {name: "string", size: 1},
	BaseFloat32: {name: "float32", size: 4},
	BaseFloat64: {name: "float64", size: 8},
	BaseUint8z:  {name: "uint8z", size: 1, zeroIsInvalid: true},
	BaseUint16z: {name: "uint16z", size: 2, zeroIsInvalid: true},
	BaseUint32z: {name: "uint32z", size: 4, zeroIsInvalid: true},
	BaseByte:    {name: "byte", size: 1},
	BaseSint64:  {name: "sint64", size: 8},
	BaseUint64:  {name: "uint64", size: 8},
	BaseUint64z: {name: "uint64z", size: 8, zeroIsInvalid: true},
}

// CanonicalBaseType maps a wire base type byte to its canonical form,
// tolerating a missing endian-ability bit (seen from some writers).
func CanonicalBaseType(b uint8) uint8 {
	switch b & 0x1F {
	case 0x03:
		return BaseSint16
	case 0x04:
		return BaseUint16
	case 0x05:
		return BaseSint32
	case 0x06:
		return BaseUint32
	case 0x08:
		return BaseFloat32
	case 0x09:
		return BaseFloat64
	case 0x0B:
		return BaseUint16z
	case 0x0C:
		return BaseUint32z
	case 0x0E:
		return BaseSint64
	case 0x0F:
		return BaseUint64
	case 0x10:
		return BaseUint64z
	default:
		return b & 0x1F
	}
}

// KnownBaseType reports whether the wire byte maps to a catalogued type.
func KnownBaseType(b uint8) bool {
	_, ok := baseSpecs[CanonicalBaseType(b)]
	return ok
}

// BaseTypeSize returns the element size in bytes of a catalogued base type.
func BaseTypeSize(b uint8) (int, bool) {
	spec, ok := baseSpecs[CanonicalBaseType(b)]
	if !ok {
		return 0, false
	}
	return spec.size, true
}

// BaseTypeName returns the canonical name for diagnostics.
func BaseTypeName(b uint8) string {
	spec, ok := baseSpecs[CanonicalBaseType(b)]
	if !ok {
		return "unknown"
	}
	return spec.name
}

// InvalidFill returns the byte pattern that marks a value of the given base
// type as not-set.
func InvalidFill(b uint8) byte {
	ct := CanonicalBaseType(b)
	if ct == BaseString {
		return 0x00
	}
	if spec, ok := baseSpecs[ct]; ok && spec.zeroIsInvalid {
		return 0x00
	}
	return 0xFF
}
