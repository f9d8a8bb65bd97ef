package fitfaker

import (
	"testing"
	"time"

	"fit-faker/fitcodec"
)

func deviceInfoFields() []fitcodec.FieldDef {
	return []fitcodec.FieldDef{
		{Num: DeviceInfoDeviceIndex, Size: 1, BaseType: fitcodec.BaseUint8},
		{Num: DeviceInfoDeviceType, Size: 1, BaseType: fitcodec.BaseUint8},
		{Num: DeviceInfoManufacturer, Size: 2, BaseType: fitcodec.BaseUint16},
		{Num: DeviceInfoProduct, Size: 2, BaseType: fitcodec.BaseUint16},
	}
}

func TestRewriteRemovesSoftwareMessages(t *testing.T) {
	var records []*fitcodec.Record
	records = append(records, defAndData(0, MsgFileID, fileIDFields(), map[uint8]uint64{
		FileIDType: 4, FileIDManufacturer: 260, FileIDProduct: 1, FileIDSerialNumber: 9, FileIDTimeCreated: 5000,
	})...)
	records = append(records, defAndData(1, MsgSoftware, []fitcodec.FieldDef{
		{Num: 3, Size: 2, BaseType: fitcodec.BaseUint16},
	}, map[uint8]uint64{3: 10950})...)
	f := decodeFixture(t, records)

	if err := Rewrite(f, DefaultProfile(), Quirks{}); err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}
	for _, r := range f.Records {
		if r.Def.GlobalNum == MsgSoftware {
			t.Fatal("software message survived rewrite")
		}
	}
}

func TestRewriteDropsAppDeviceInfoAndRenumbers(t *testing.T) {
	infoDef := &fitcodec.Definition{LocalType: 1, GlobalNum: MsgDeviceInfo, Fields: deviceInfoFields()}
	var records []*fitcodec.Record
	records = append(records, defAndData(0, MsgFileID, fileIDFields(), map[uint8]uint64{
		FileIDType: 4, FileIDManufacturer: 260, FileIDProduct: 1, FileIDSerialNumber: 9, FileIDTimeCreated: 5000,
	})...)
	records = append(records, &fitcodec.Record{Kind: fitcodec.KindDefinition, Def: infoDef})
	// Index 0 is the recording app (device_type 0); real sensors follow.
	records = append(records, dataRecord(infoDef, map[uint8]uint64{
		DeviceInfoDeviceIndex: 0, DeviceInfoDeviceType: 0, DeviceInfoManufacturer: 260, DeviceInfoProduct: 1,
	}))
	records = append(records, dataRecord(infoDef, map[uint8]uint64{
		DeviceInfoDeviceIndex: 1, DeviceInfoDeviceType: 120, DeviceInfoManufacturer: 260, DeviceInfoProduct: 1,
	}))
	records = append(records, dataRecord(infoDef, map[uint8]uint64{
		DeviceInfoDeviceIndex: 2, DeviceInfoDeviceType: 11, DeviceInfoManufacturer: 15, DeviceInfoProduct: 33,
	}))
	f := decodeFixture(t, records)

	quirks := Quirks{ManufacturerFilter: RewriteManufacturers()}
	if err := Rewrite(f, DefaultProfile(), quirks); err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}

	infos := f.DataRecords(MsgDeviceInfo)
	if len(infos) != 2 {
		t.Fatalf("expected app device_info to be dropped, got %d entries", len(infos))
	}

	// The Zwift trainer entry is rewritten to the target and becomes the
	// primary device.
	assertField(t, infos[0], DeviceInfoManufacturer, uint64(ManufacturerGarmin))
	assertField(t, infos[0], DeviceInfoProduct, uint64(ProductEdge830))
	assertField(t, infos[0], DeviceInfoDeviceIndex, DeviceIndexCreator)

	// The third-party sensor keeps its identity but its index shifts down.
	assertField(t, infos[1], DeviceInfoManufacturer, 15)
	assertField(t, infos[1], DeviceInfoProduct, 33)
	assertField(t, infos[1], DeviceInfoDeviceIndex, 1)
}

func TestRewriteBlankManufacturerDeviceInfo(t *testing.T) {
	infoDef := &fitcodec.Definition{LocalType: 1, GlobalNum: MsgDeviceInfo, Fields: deviceInfoFields()}
	var records []*fitcodec.Record
	records = append(records, defAndData(0, MsgFileID, fileIDFields(), map[uint8]uint64{
		FileIDType: 4, FileIDManufacturer: 331, FileIDProduct: 1, FileIDSerialNumber: 9, FileIDTimeCreated: 5000,
	})...)
	records = append(records, &fitcodec.Record{Kind: fitcodec.KindDefinition, Def: infoDef})
	records = append(records, dataRecord(infoDef, map[uint8]uint64{
		DeviceInfoDeviceIndex: 0, DeviceInfoDeviceType: 120, DeviceInfoManufacturer: 0, DeviceInfoProduct: 0,
	}))
	f := decodeFixture(t, records)

	quirks := Quirks{ManufacturerFilter: RewriteManufacturers()}
	if err := Rewrite(f, DefaultProfile(), quirks); err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}

	info := f.FirstData(MsgDeviceInfo)
	assertField(t, info, DeviceInfoManufacturer, uint64(ManufacturerGarmin))
	assertField(t, info, DeviceInfoProduct, uint64(ProductEdge830))
}

func TestRewriteDropsProductName(t *testing.T) {
	fields := append(fileIDFields(), fitcodec.FieldDef{Num: FileIDProductName, Size: 8, BaseType: fitcodec.BaseString})
	def := &fitcodec.Definition{LocalType: 0, GlobalNum: MsgFileID, Fields: fields}
	rec := dataRecord(def, map[uint8]uint64{
		FileIDType: 4, FileIDManufacturer: 289, FileIDProduct: 1, FileIDSerialNumber: 9, FileIDTimeCreated: 5000,
	})
	copy(rec.Fields[def.FieldIndex(FileIDProductName)], "KAROO\x00")
	f := decodeFixture(t, []*fitcodec.Record{{Kind: fitcodec.KindDefinition, Def: def}, rec})

	if err := Rewrite(f, DefaultProfile(), Quirks{}); err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}

	fileID := f.FirstData(MsgFileID)
	if fileID.Def.FieldIndex(FileIDProductName) >= 0 {
		t.Fatal("product_name field survived rewrite")
	}
	assertField(t, fileID, FileIDManufacturer, uint64(ManufacturerGarmin))

	if _, err := fitcodec.Encode(f); err != nil {
		t.Fatalf("encode after rewrite: %v", err)
	}
}

func TestRewriteSetsMissingTimeCreated(t *testing.T) {
	fields := []fitcodec.FieldDef{
		{Num: FileIDType, Size: 1, BaseType: fitcodec.BaseEnum},
		{Num: FileIDManufacturer, Size: 2, BaseType: fitcodec.BaseUint16},
	}
	f := decodeFixture(t, defAndData(0, MsgFileID, fields, map[uint8]uint64{
		FileIDType: 4, FileIDManufacturer: 255,
	}))

	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	if err := Rewrite(f, DefaultProfile(), Quirks{}); err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}

	fileID := f.FirstData(MsgFileID)
	assertField(t, fileID, FileIDTimeCreated, uint64(fixed.Unix()-fitEpochOffset))
	// The rewrite also had to add the missing identity fields.
	assertField(t, fileID, FileIDProduct, uint64(ProductEdge830))
	assertField(t, fileID, FileIDSerialNumber, defaultSerialNumber)
}
