package fitcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// InvariantError reports an encode-time mismatch between a data record and
// its governing definition. It always indicates a defect in an upstream
// transform pass, never a recoverable input condition.
type InvariantError struct {
	GlobalNum uint16
	Msg       string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("fit encode: %s (global message %d)", e.Msg, e.GlobalNum)
}

// Encode serializes the record sequence back to a complete FIT byte stream.
// The header payload size and both CRCs are recomputed from the bytes
// actually written; values from the decoded input are never trusted.
//
// Definitions are emitted only when the active local-message-type table
// must change: on first use of a local type or on redefinition. Unchanged
// definition records repeated in the sequence are elided.
func Encode(f *File) ([]byte, error) {
	var body bytes.Buffer
	active := make(map[uint8]*Definition)

	for _, r := range f.Records {
		switch r.Kind {
		case KindDefinition:
			if cur, ok := active[r.Def.LocalType]; ok && cur.Equal(r.Def) {
				continue
			}
			writeDefinition(&body, r.Def)
			active[r.Def.LocalType] = r.Def
		case KindData:
			if err := checkRecord(r); err != nil {
				return nil, err
			}
			if cur, ok := active[r.Def.LocalType]; !ok || !cur.Equal(r.Def) {
				writeDefinition(&body, r.Def)
				active[r.Def.LocalType] = r.Def
			}
			writeData(&body, r)
		}
	}

	header := make([]byte, headerSizeCRC)
	header[0] = headerSizeCRC
	header[1] = f.Header.ProtocolVersion
	binary.LittleEndian.PutUint16(header[2:4], f.Header.ProfileVersion)
	binary.LittleEndian.PutUint32(header[4:8], uint32(body.Len()))
	copy(header[8:12], FileSignature)
	binary.LittleEndian.PutUint16(header[12:14], Checksum(header[:12]))

	out := make([]byte, 0, len(header)+body.Len()+2)
	out = append(out, header...)
	out = append(out, body.Bytes()...)

	trailer := make([]byte, 2)
	binary.LittleEndian.PutUint16(trailer, Checksum(out))
	return append(out, trailer...), nil
}

func checkRecord(r *Record) error {
	def := r.Def
	if len(r.Fields) != len(def.Fields) {
		return &InvariantError{
			GlobalNum: def.GlobalNum,
			Msg:       fmt.Sprintf("record has %d field values, definition declares %d", len(r.Fields), len(def.Fields)),
		}
	}
	if len(r.DevFields) != len(def.DevFields) {
		return &InvariantError{
			GlobalNum: def.GlobalNum,
			Msg:       fmt.Sprintf("record has %d developer values, definition declares %d", len(r.DevFields), len(def.DevFields)),
		}
	}
	for i, fd := range def.Fields {
		if len(r.Fields[i]) != int(fd.Size) {
			return &InvariantError{
				GlobalNum: def.GlobalNum,
				Msg:       fmt.Sprintf("field %d value is %d bytes, definition declares %d", fd.Num, len(r.Fields[i]), fd.Size),
			}
		}
	}
	for i, dd := range def.DevFields {
		if len(r.DevFields[i]) != int(dd.Size) {
			return &InvariantError{
				GlobalNum: def.GlobalNum,
				Msg:       fmt.Sprintf("developer field %d value is %d bytes, definition declares %d", dd.Num, len(r.DevFields[i]), dd.Size),
			}
		}
	}
	return nil
}

func writeDefinition(buf *bytes.Buffer, def *Definition) {
	headerByte := uint8(mesgDefinitionMask) | def.LocalType&localMesgNumMask
	if len(def.DevFields) > 0 {
		headerByte |= devDataMask
	}
	buf.WriteByte(headerByte)
	buf.WriteByte(0) // reserved
	buf.WriteByte(def.ArchByte)

	global := make([]byte, 2)
	def.Arch().PutUint16(global, def.GlobalNum)
	buf.Write(global)

	buf.WriteByte(uint8(len(def.Fields)))
	for _, fd := range def.Fields {
		buf.Write([]byte{fd.Num, fd.Size, fd.BaseType})
	}
	if len(def.DevFields) > 0 {
		buf.WriteByte(uint8(len(def.DevFields)))
		for _, dd := range def.DevFields {
			buf.Write([]byte{dd.Num, dd.Size, dd.DevDataIndex})
		}
	}
}

func writeData(buf *bytes.Buffer, r *Record) {
	if r.Compressed() {
		// Compressed timestamp headers carry the local type and 5-bit time
		// offset in the header byte itself; reuse it as decoded.
		buf.WriteByte(r.HeaderByte)
	} else {
		buf.WriteByte(r.Def.LocalType & localMesgNumMask)
	}
	for _, raw := range r.Fields {
		buf.Write(raw)
	}
	for _, raw := range r.DevFields {
		buf.Write(raw)
	}
}
