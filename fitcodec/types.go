// Package fitcodec decodes and encodes the FIT binary container at the
// record level: file header, definition and data records, developer field
// extensions, and the trailing CRC. It interprets field payloads only as
// raw byte segments; assigning meaning to fields is the caller's job.
package fitcodec

import "encoding/binary"

const (
	compressedHeaderMask       = 0x80
	compressedLocalMesgNumMask = 0x60
	compressedTimeMask         = 0x1F
	mesgDefinitionMask         = 0x40
	devDataMask                = 0x20
	localMesgNumMask           = 0x0F

	headerSizeNoCRC = 12
	headerSizeCRC   = 14

	// MaxLocalType is the highest local message type expressible in a
	// normal record header.
	MaxLocalType = 0x0F
)

// FileSignature is the 4-byte data type tag every FIT header carries.
const FileSignature = ".FIT"

// FileHeader stores parsed FIT header values.
type FileHeader struct {
	Size            uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32
	DataType        string
}

// FieldDef is one field entry of a definition record.
type FieldDef struct {
	Num      uint8
	Size     uint8
	BaseType uint8 // raw base type byte as it appeared on the wire
}

// DevFieldDef is one developer field entry of a definition record. The
// DevDataIndex must resolve to a previously seen developer_data_id message.
type DevFieldDef struct {
	Num          uint8
	Size         uint8
	DevDataIndex uint8
}

// Definition is the decoded layout declaration for one local message type.
// Data records decoded under it share the same *Definition, so mutating a
// Definition (e.g. dropping a field entry) must be paired with the matching
// positional mutation of every data record bound to it.
type Definition struct {
	LocalType uint8
	ArchByte  uint8
	GlobalNum uint16
	Fields    []FieldDef
	DevFields []DevFieldDef
}

// Arch returns the byte order declared by the definition.
func (d *Definition) Arch() binary.ByteOrder {
	if d.ArchByte == 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// FieldIndex returns the position of field num, or -1.
func (d *Definition) FieldIndex(num uint8) int {
	for i, fd := range d.Fields {
		if fd.Num == num {
			return i
		}
	}
	return -1
}

// PayloadSize is the total data record payload length the definition implies.
func (d *Definition) PayloadSize() int {
	n := 0
	for _, fd := range d.Fields {
		n += int(fd.Size)
	}
	for _, dd := range d.DevFields {
		n += int(dd.Size)
	}
	return n
}

// Equal reports whether two definitions declare the identical layout.
func (d *Definition) Equal(other *Definition) bool {
	if d == other {
		return true
	}
	if other == nil || d.LocalType != other.LocalType || d.ArchByte != other.ArchByte ||
		d.GlobalNum != other.GlobalNum ||
		len(d.Fields) != len(other.Fields) || len(d.DevFields) != len(other.DevFields) {
		return false
	}
	for i := range d.Fields {
		if d.Fields[i] != other.Fields[i] {
			return false
		}
	}
	for i := range d.DevFields {
		if d.DevFields[i] != other.DevFields[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	out := &Definition{
		LocalType: d.LocalType,
		ArchByte:  d.ArchByte,
		GlobalNum: d.GlobalNum,
		Fields:    make([]FieldDef, len(d.Fields)),
		DevFields: make([]DevFieldDef, len(d.DevFields)),
	}
	copy(out.Fields, d.Fields)
	copy(out.DevFields, d.DevFields)
	return out
}

// RecordKind discriminates the two record variants of the container.
type RecordKind uint8

const (
	KindDefinition RecordKind = iota
	KindData
)

// Record is one decoded FIT record. For KindDefinition, Def is the declared
// layout. For KindData, Def points at the governing definition and Fields /
// DevFields hold one raw byte segment per definition entry, in definition
// order.
type Record struct {
	Kind       RecordKind
	HeaderByte uint8
	Def        *Definition
	Fields     [][]byte
	DevFields  [][]byte
}

// GlobalNum returns the record's global message number.
func (r *Record) GlobalNum() uint16 { return r.Def.GlobalNum }

// Compressed reports whether the record used a compressed timestamp header.
func (r *Record) Compressed() bool {
	return r.Kind == KindData && r.HeaderByte&compressedHeaderMask != 0
}

// IsData reports whether the record is a data record for global message num.
func (r *Record) IsData(num uint16) bool {
	return r.Kind == KindData && r.Def.GlobalNum == num
}

// File is a fully decoded FIT byte stream: header, ordered record sequence
// and trailer CRC bookkeeping. The sequence is mutated in place by the
// transform passes and consumed once by Encode.
type File struct {
	Header  FileHeader
	Records []*Record

	// Trailer CRC as stored in the input and as recomputed over the input
	// bytes. Mismatches are diagnostic only; Encode always recomputes.
	StoredCRC   uint16
	ComputedCRC uint16
}

// CRCValid reports whether the input trailer CRC matched the input bytes.
func (f *File) CRCValid() bool { return f.StoredCRC == f.ComputedCRC }

// DataRecords returns all data records for the given global message number,
// in sequence order.
func (f *File) DataRecords(num uint16) []*Record {
	var out []*Record
	for _, r := range f.Records {
		if r.IsData(num) {
			out = append(out, r)
		}
	}
	return out
}

// FirstData returns the first data record for the global message number.
func (f *File) FirstData(num uint16) *Record {
	for _, r := range f.Records {
		if r.IsData(num) {
			return r
		}
	}
	return nil
}

// FreeLocalType picks a local message type not declared anywhere in the
// sequence, preferring an unused slot so synthesized definitions do not
// force redefinition churn. Falls back to 0 when all 16 are taken.
func (f *File) FreeLocalType() uint8 {
	var used [MaxLocalType + 1]bool
	for _, r := range f.Records {
		if r.Kind == KindDefinition {
			used[r.Def.LocalType&localMesgNumMask] = true
		}
	}
	for lt := MaxLocalType; lt >= 0; lt-- {
		if !used[lt] {
			return uint8(lt)
		}
	}
	return 0
}
