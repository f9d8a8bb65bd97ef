package fitfaker

import (
	"errors"
	"fmt"
	"time"

	"fit-faker/fitcodec"
)

// ErrNoFileID marks input that decodes cleanly but carries no file_id
// message; there is no identity to rewrite.
var ErrNoFileID = errors.New("no file_id message in file")

// Seconds between the Unix epoch and the FIT epoch (1989-12-31 UTC).
const fitEpochOffset = 631065600

var timeNow = time.Now

// Rewrite mutates the sanitized record sequence so the file presents as
// the target profile's device:
//
//   - file_id: manufacturer, product and serial number overwritten; other
//     fields (file type, creation time) preserved.
//   - device_info: manufacturer and product overwritten, product_name
//     cleared, device_index forced to the primary-device value.
//   - software messages: removed, they name the source application.
//   - file_creator and device_info records are synthesized immediately
//     after the file_id message when the source omitted them.
//
// Under a ManufacturerFilter quirk the file_id rewrite only applies to
// files whose original manufacturer is in the set; device_info rewriting
// additionally accepts a blank manufacturer.
func Rewrite(f *fitcodec.File, profile DeviceProfile, quirks Quirks) error {
	fileID := f.FirstData(MsgFileID)
	if fileID == nil {
		return fmt.Errorf("rewrite: %w", ErrNoFileID)
	}

	origManufacturer, _ := fileID.FieldUint(FileIDManufacturer)
	if quirks.allowsFileID(origManufacturer) {
		rewriteFileID(f, fileID, profile)
	}

	removeSoftwareMessages(f)

	creatorSeen := rewriteFileCreator(f, profile)
	deviceInfoSeen := rewriteDeviceInfo(f, profile, quirks)

	var inserts []*fitcodec.Record
	localType := f.FreeLocalType()
	if !creatorSeen {
		inserts = append(inserts, buildFileCreator(localType, profile)...)
	}
	if !deviceInfoSeen {
		inserts = append(inserts, buildDeviceInfo(localType, profile)...)
	}
	if len(inserts) > 0 {
		insertAfter(f, fileID, inserts)
	}
	return nil
}

func rewriteFileID(f *fitcodec.File, rec *fitcodec.Record, profile DeviceProfile) {
	def := rec.Def
	f.EnsureField(def, fitcodec.FieldDef{Num: FileIDManufacturer, Size: 2, BaseType: fitcodec.BaseUint16})
	f.EnsureField(def, fitcodec.FieldDef{Num: FileIDProduct, Size: 2, BaseType: fitcodec.BaseUint16})
	f.EnsureField(def, fitcodec.FieldDef{Num: FileIDSerialNumber, Size: 4, BaseType: fitcodec.BaseUint32z})

	rec.SetFieldUint(FileIDManufacturer, uint64(profile.Manufacturer))
	rec.SetFieldUint(FileIDProduct, uint64(profile.Product))
	rec.SetFieldUint(FileIDSerialNumber, uint64(profile.SerialNumber))

	// Garmin units do not write product_name in file_id; keeping the
	// source platform's name string would leak the original identity.
	f.DropField(def, FileIDProductName)

	if created, ok := rec.FieldUint(FileIDTimeCreated); !ok || created == 0 {
		f.EnsureField(def, fitcodec.FieldDef{Num: FileIDTimeCreated, Size: 4, BaseType: fitcodec.BaseUint32})
		rec.SetFieldUint(FileIDTimeCreated, uint64(timeNow().Unix()-fitEpochOffset))
	}
}

func rewriteFileCreator(f *fitcodec.File, profile DeviceProfile) bool {
	seen := false
	for _, r := range f.Records {
		if !r.IsData(MsgFileCreator) {
			continue
		}
		seen = true
		f.EnsureField(r.Def, fitcodec.FieldDef{Num: FileCreatorSoftwareVersion, Size: 2, BaseType: fitcodec.BaseUint16})
		r.SetFieldUint(FileCreatorSoftwareVersion, uint64(profile.SoftwareVersion))
		if profile.HardwareVersion > 0 {
			f.EnsureField(r.Def, fitcodec.FieldDef{Num: FileCreatorHardwareVersion, Size: 1, BaseType: fitcodec.BaseUint8})
			r.SetFieldUint(FileCreatorHardwareVersion, uint64(profile.HardwareVersion))
		}
	}
	return seen
}

func rewriteDeviceInfo(f *fitcodec.File, profile DeviceProfile, quirks Quirks) bool {
	// Some platforms emit a synthetic device_info with device_type 0 for
	// the recording app itself. Drop it and renumber the remaining device
	// indexes down so the chain stays contiguous.
	dropped := false
	kept := f.Records[:0]
	for _, r := range f.Records {
		if r.IsData(MsgDeviceInfo) {
			if devType, ok := r.FieldUint(DeviceInfoDeviceType); ok && devType == 0 {
				dropped = true
				continue
			}
			if dropped {
				if idx, ok := r.FieldUint(DeviceInfoDeviceIndex); ok && idx > 0 {
					r.SetFieldUint(DeviceInfoDeviceIndex, idx-1)
				}
			}
		}
		kept = append(kept, r)
	}
	f.Records = kept

	seen := false
	for _, r := range f.Records {
		if !r.IsData(MsgDeviceInfo) {
			continue
		}
		seen = true
		manufacturer, _ := r.FieldUint(DeviceInfoManufacturer)
		if !quirks.allowsDeviceInfo(manufacturer) {
			continue
		}
		r.SetFieldUint(DeviceInfoManufacturer, uint64(profile.Manufacturer))
		r.SetFieldUint(DeviceInfoProduct, uint64(profile.Product))
		r.ClearField(DeviceInfoProductName)
		// Non-zero indexes on the creator entry break primary-device
		// image lookup in at least one consumer.
		r.SetFieldUint(DeviceInfoDeviceIndex, DeviceIndexCreator)
	}
	return seen
}

func removeSoftwareMessages(f *fitcodec.File) {
	kept := f.Records[:0]
	for _, r := range f.Records {
		if r.Def.GlobalNum == MsgSoftware {
			continue
		}
		kept = append(kept, r)
	}
	f.Records = kept
}

func buildFileCreator(localType uint8, profile DeviceProfile) []*fitcodec.Record {
	fields := []fitcodec.FieldDef{
		{Num: FileCreatorSoftwareVersion, Size: 2, BaseType: fitcodec.BaseUint16},
	}
	values := map[uint8]uint64{
		FileCreatorSoftwareVersion: uint64(profile.SoftwareVersion),
	}
	if profile.HardwareVersion > 0 {
		fields = append(fields, fitcodec.FieldDef{Num: FileCreatorHardwareVersion, Size: 1, BaseType: fitcodec.BaseUint8})
		values[FileCreatorHardwareVersion] = uint64(profile.HardwareVersion)
	}
	return buildMessage(localType, MsgFileCreator, fields, values)
}

func buildDeviceInfo(localType uint8, profile DeviceProfile) []*fitcodec.Record {
	fields := []fitcodec.FieldDef{
		{Num: DeviceInfoDeviceIndex, Size: 1, BaseType: fitcodec.BaseUint8},
		{Num: DeviceInfoManufacturer, Size: 2, BaseType: fitcodec.BaseUint16},
		{Num: DeviceInfoSerialNumber, Size: 4, BaseType: fitcodec.BaseUint32z},
		{Num: DeviceInfoProduct, Size: 2, BaseType: fitcodec.BaseUint16},
		{Num: DeviceInfoSoftwareVersion, Size: 2, BaseType: fitcodec.BaseUint16},
	}
	values := map[uint8]uint64{
		DeviceInfoDeviceIndex:     DeviceIndexCreator,
		DeviceInfoManufacturer:    uint64(profile.Manufacturer),
		DeviceInfoSerialNumber:    uint64(profile.SerialNumber),
		DeviceInfoProduct:         uint64(profile.Product),
		DeviceInfoSoftwareVersion: uint64(profile.SoftwareVersion),
	}
	return buildMessage(localType, MsgDeviceInfo, fields, values)
}

// buildMessage synthesizes a definition/data record pair for a message
// that the source file omitted entirely.
func buildMessage(localType uint8, global uint16, fields []fitcodec.FieldDef, values map[uint8]uint64) []*fitcodec.Record {
	def := &fitcodec.Definition{
		LocalType: localType,
		GlobalNum: global,
		Fields:    fields,
	}
	data := &fitcodec.Record{
		Kind:   fitcodec.KindData,
		Def:    def,
		Fields: make([][]byte, 0, len(fields)),
	}
	for _, fd := range fields {
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
	return []*fitcodec.Record{
		{Kind: fitcodec.KindDefinition, Def: def},
		data,
	}
}

func insertAfter(f *fitcodec.File, anchor *fitcodec.Record, inserts []*fitcodec.Record) {
	at := len(f.Records)
	for i, r := range f.Records {
		if r == anchor {
			at = i + 1
			break
		}
	}
	out := make([]*fitcodec.Record, 0, len(f.Records)+len(inserts))
	out = append(out, f.Records[:at]...)
	out = append(out, inserts...)
	out = append(out, f.Records[at:]...)
	f.Records = out
}
