package fitfaker

import (
	"testing"

	"fit-faker/fitcodec"
)

// defAndData builds a definition/data record pair for one message, with
// every field initialized to its not-set fill and then overwritten from
// values.
func defAndData(local uint8, global uint16, fields []fitcodec.FieldDef, values map[uint8]uint64) []*fitcodec.Record {
	def := &fitcodec.Definition{LocalType: local, GlobalNum: global, Fields: fields}
	return []*fitcodec.Record{{Kind: fitcodec.KindDefinition, Def: def}, dataRecord(def, values)}
}

// dataRecord builds a data record bound to def, every field at its
// not-set fill, overwritten from values.
func dataRecord(def *fitcodec.Definition, values map[uint8]uint64) *fitcodec.Record {
	data := &fitcodec.Record{Kind: fitcodec.KindData, Def: def, Fields: make([][]byte, 0, len(def.Fields))}
	for _, fd := range def.Fields {
		raw := make([]byte, fd.Size)
		fill := fitcodec.InvalidFill(fd.BaseType)
		for i := range raw {
			raw[i] = fill
		}
		data.Fields = append(data.Fields, raw)
	}
	for num, v := range values {
		data.SetFieldUint(num, v)
	}
	return data
}

func fileIDFields() []fitcodec.FieldDef {
	return []fitcodec.FieldDef{
		{Num: FileIDType, Size: 1, BaseType: fitcodec.BaseEnum},
		{Num: FileIDManufacturer, Size: 2, BaseType: fitcodec.BaseUint16},
		{Num: FileIDProduct, Size: 2, BaseType: fitcodec.BaseUint16},
		{Num: FileIDSerialNumber, Size: 4, BaseType: fitcodec.BaseUint32z},
		{Num: FileIDTimeCreated, Size: 4, BaseType: fitcodec.BaseUint32},
	}
}

// buildActivityBytes encodes a minimal activity: file_id, a few record
// messages, one session, one activity.
func buildActivityBytes(t *testing.T, manufacturer, product uint16, serial uint32) []byte {
	t.Helper()

	var records []*fitcodec.Record
	records = append(records, defAndData(0, MsgFileID, fileIDFields(), map[uint8]uint64{
		FileIDType:         4, // activity
		FileIDManufacturer: uint64(manufacturer),
		FileIDProduct:      uint64(product),
		FileIDSerialNumber: uint64(serial),
		FileIDTimeCreated:  1_000_000_000,
	})...)

	recordFields := []fitcodec.FieldDef{
		{Num: 253, Size: 4, BaseType: fitcodec.BaseUint32},
		{Num: 3, Size: 1, BaseType: fitcodec.BaseUint8},
	}
	recordDef := &fitcodec.Definition{LocalType: 1, GlobalNum: MsgRecord, Fields: recordFields}
	records = append(records, &fitcodec.Record{Kind: fitcodec.KindDefinition, Def: recordDef})
	for i := uint64(0); i < 3; i++ {
		records = append(records, dataRecord(recordDef, map[uint8]uint64{253: 1_000_000_000 + i, 3: 130 + i}))
	}

	sessionFields := []fitcodec.FieldDef{
		{Num: 253, Size: 4, BaseType: fitcodec.BaseUint32},
		{Num: 5, Size: 1, BaseType: fitcodec.BaseEnum},
	}
	records = append(records, defAndData(2, MsgSession, sessionFields, map[uint8]uint64{253: 1_000_000_003, 5: 2})...)

	activityFields := []fitcodec.FieldDef{
		{Num: 253, Size: 4, BaseType: fitcodec.BaseUint32},
		{Num: 1, Size: 2, BaseType: fitcodec.BaseUint16},
	}
	records = append(records, defAndData(3, MsgActivity, activityFields, map[uint8]uint64{253: 1_000_000_003, 1: 1})...)

	return encodeFile(t, records)
}

func encodeFile(t *testing.T, records []*fitcodec.Record) []byte {
	t.Helper()
	out, err := fitcodec.Encode(&fitcodec.File{
		Header:  fitcodec.FileHeader{ProtocolVersion: 0x20, ProfileVersion: 2140},
		Records: records,
	})
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return out
}
