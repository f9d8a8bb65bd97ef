package fitcodec

import (
	"encoding/binary"
	"fmt"
)

// DecodeError reports a malformed or truncated FIT stream. The whole file
// is rejected; there is no partial decode.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fit decode: %s (offset %d)", e.Msg, e.Offset)
}

func decodeErrorf(offset int, format string, args ...any) error {
	return &DecodeError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Decode parses a full FIT byte stream into a File. The input trailer CRC
// is recorded but never enforced: the caller is about to rewrite the bytes
// anyway, so a stale CRC is a diagnostic, not a failure.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSizeNoCRC+2 {
		return nil, decodeErrorf(0, "file too short: %d bytes", len(data))
	}

	header, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	dataStart := int(header.Size)
	required := dataStart + int(header.DataSize) + 2
	if len(data) < required {
		return nil, decodeErrorf(len(data), "truncated: have %d bytes, need %d", len(data), required)
	}

	body := data[dataStart : dataStart+int(header.DataSize)]
	stored := binary.LittleEndian.Uint16(data[dataStart+int(header.DataSize):])

	dec := &decoder{base: dataStart, data: body, table: make(map[uint8]*Definition)}
	records, err := dec.run()
	if err != nil {
		return nil, err
	}

	return &File{
		Header:      header,
		Records:     records,
		StoredCRC:   stored,
		ComputedCRC: Checksum(data[:dataStart+int(header.DataSize)]),
	}, nil
}

func decodeHeader(data []byte) (FileHeader, error) {
	size := data[0]
	if size != headerSizeNoCRC && size != headerSizeCRC {
		return FileHeader{}, decodeErrorf(0, "invalid header size %d", size)
	}
	if len(data) < int(size) {
		return FileHeader{}, decodeErrorf(0, "truncated header: need %d bytes", size)
	}

	h := FileHeader{
		Size:            size,
		ProtocolVersion: data[1],
		ProfileVersion:  binary.LittleEndian.Uint16(data[2:4]),
		DataSize:        binary.LittleEndian.Uint32(data[4:8]),
		DataType:        string(data[8:12]),
	}
	if h.DataType != FileSignature {
		return FileHeader{}, decodeErrorf(8, "invalid data type %q", h.DataType)
	}
	return h, nil
}

// decoder walks the record body maintaining the active local-message-type
// table. The table is per-decode state, never shared, so batch transforms
// of separate files stay independent.
type decoder struct {
	base  int
	data  []byte
	pos   int
	table map[uint8]*Definition
}

func (d *decoder) offset() int { return d.base + d.pos }

func (d *decoder) read(n int) ([]byte, error) {
	if d.pos+n > len(d.data) {
		return nil, decodeErrorf(d.offset(), "record truncated")
	}
	out := d.data[d.pos : d.pos+n]
	d.pos += n
	return out, nil
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) run() ([]*Record, error) {
	var records []*Record
	for d.pos < len(d.data) {
		headerByte, err := d.readByte()
		if err != nil {
			return nil, err
		}

		var rec *Record
		switch {
		case headerByte&compressedHeaderMask != 0:
			local := (headerByte & compressedLocalMesgNumMask) >> 5
			rec, err = d.dataRecord(headerByte, local)
		case headerByte&mesgDefinitionMask != 0:
			rec, err = d.definitionRecord(headerByte)
		default:
			rec, err = d.dataRecord(headerByte, headerByte&localMesgNumMask)
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (d *decoder) definitionRecord(headerByte uint8) (*Record, error) {
	start := d.offset() - 1

	if _, err := d.readByte(); err != nil { // reserved
		return nil, err
	}
	archByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if archByte > 1 {
		return nil, decodeErrorf(start, "invalid architecture byte %d", archByte)
	}

	def := &Definition{
		LocalType: headerByte & localMesgNumMask,
		ArchByte:  archByte,
	}

	globalBytes, err := d.read(2)
	if err != nil {
		return nil, err
	}
	def.GlobalNum = def.Arch().Uint16(globalBytes)

	numFields, err := d.readByte()
	if err != nil {
		return nil, err
	}
	def.Fields = make([]FieldDef, 0, numFields)
	for i := 0; i < int(numFields); i++ {
		raw, err := d.read(3)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, FieldDef{Num: raw[0], Size: raw[1], BaseType: raw[2]})
	}

	if headerByte&devDataMask != 0 {
		devCount, err := d.readByte()
		if err != nil {
			return nil, err
		}
		def.DevFields = make([]DevFieldDef, 0, devCount)
		for i := 0; i < int(devCount); i++ {
			raw, err := d.read(3)
			if err != nil {
				return nil, err
			}
			def.DevFields = append(def.DevFields, DevFieldDef{Num: raw[0], Size: raw[1], DevDataIndex: raw[2]})
		}
	}

	// Redefinition of a local type replaces its layout from here on.
	d.table[def.LocalType] = def

	return &Record{Kind: KindDefinition, HeaderByte: headerByte, Def: def}, nil
}

func (d *decoder) dataRecord(headerByte, local uint8) (*Record, error) {
	start := d.offset() - 1
	def, ok := d.table[local]
	if !ok {
		return nil, decodeErrorf(start, "data record references undefined local type %d", local)
	}

	rec := &Record{
		Kind:       KindData,
		HeaderByte: headerByte,
		Def:        def,
		Fields:     make([][]byte, 0, len(def.Fields)),
	}
	for _, fd := range def.Fields {
		raw, err := d.read(int(fd.Size))
		if err != nil {
			return nil, err
		}
		// Copy out of the input buffer so later mutation never aliases it.
		rec.Fields = append(rec.Fields, append([]byte(nil), raw...))
	}
	if len(def.DevFields) > 0 {
		rec.DevFields = make([][]byte, 0, len(def.DevFields))
		for _, dd := range def.DevFields {
			raw, err := d.read(int(dd.Size))
			if err != nil {
				return nil, err
			}
			rec.DevFields = append(rec.DevFields, append([]byte(nil), raw...))
		}
	}
	return rec, nil
}
