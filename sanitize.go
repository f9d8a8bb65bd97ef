package fitfaker

import (
	"fmt"

	"fit-faker/fitcodec"
)

// Sanitize inspects every definition in sequence order and removes field
// entries that are structurally invalid: zero-size fields, unrecognized
// base types, and developer fields whose developer_data_id /
// field_description pair never resolves. The bytes of a dropped field are
// removed positionally from every data record bound to the definition, so
// the offsets of the remaining valid fields stay correct.
//
// Whole messages are never removed, and sanitization never fails; each
// dropped entry is surfaced as a Warning.
func Sanitize(f *fitcodec.File, quirks Quirks) []Warning {
	type defPlan struct {
		def        *fitcodec.Definition
		keepFields []int
		keepDev    []int
		changed    bool
	}

	devIDs := make(map[uint64]bool)
	described := make(map[[2]uint64]bool)
	planned := make(map[*fitcodec.Definition]bool)
	var plans []defPlan
	var warnings []Warning

	// Resolution state is positional: a developer field is trusted only
	// when its developer_data_id and field_description were seen before
	// the definition that references them.
	for _, r := range f.Records {
		switch {
		case r.Kind == fitcodec.KindDefinition:
			if planned[r.Def] {
				continue
			}
			planned[r.Def] = true

			plan := defPlan{def: r.Def}
			for i, fd := range r.Def.Fields {
				if reason := fieldDropReason(fd, quirks); reason != "" {
					warnings = append(warnings, Warning{
						GlobalNum: r.Def.GlobalNum,
						LocalType: r.Def.LocalType,
						FieldNum:  fd.Num,
						Reason:    reason,
					})
					plan.changed = true
					continue
				}
				plan.keepFields = append(plan.keepFields, i)
			}
			for i, dd := range r.Def.DevFields {
				if reason := devFieldDropReason(dd, devIDs, described); reason != "" {
					warnings = append(warnings, Warning{
						GlobalNum: r.Def.GlobalNum,
						LocalType: r.Def.LocalType,
						FieldNum:  dd.Num,
						Developer: true,
						Reason:    reason,
					})
					plan.changed = true
					continue
				}
				plan.keepDev = append(plan.keepDev, i)
			}
			if plan.changed {
				plans = append(plans, plan)
			}

		case r.IsData(MsgDeveloperDataID):
			if idx, ok := r.FieldUint(DevDataIDDeveloperDataIndex); ok {
				devIDs[idx] = true
			}

		case r.IsData(MsgFieldDescription):
			idx, okIdx := r.FieldUint(FieldDescDeveloperDataIndex)
			num, okNum := r.FieldUint(FieldDescFieldDefNumber)
			if okIdx && okNum {
				described[[2]uint64{idx, num}] = true
			}
		}
	}

	for _, plan := range plans {
		applyPlan(f, plan.def, plan.keepFields, plan.keepDev)
	}
	return warnings
}

func fieldDropReason(fd fitcodec.FieldDef, quirks Quirks) string {
	if fd.Size == 0 {
		return "zero declared size"
	}
	if !fitcodec.KnownBaseType(fd.BaseType) {
		return fmt.Sprintf("unrecognized base type 0x%02X", fd.BaseType)
	}
	elem, _ := fitcodec.BaseTypeSize(fd.BaseType)
	if elem > 0 && int(fd.Size)%elem != 0 && !quirks.LenientFieldSize {
		return fmt.Sprintf("declared size %d not divisible by %s element size %d",
			fd.Size, fitcodec.BaseTypeName(fd.BaseType), elem)
	}
	return ""
}

func devFieldDropReason(dd fitcodec.DevFieldDef, devIDs map[uint64]bool, described map[[2]uint64]bool) string {
	if dd.Size == 0 {
		return "zero declared size"
	}
	if !devIDs[uint64(dd.DevDataIndex)] {
		return fmt.Sprintf("unresolved developer data index %d", dd.DevDataIndex)
	}
	if !described[[2]uint64{uint64(dd.DevDataIndex), uint64(dd.Num)}] {
		return fmt.Sprintf("no field description for developer data index %d field %d", dd.DevDataIndex, dd.Num)
	}
	return ""
}

func applyPlan(f *fitcodec.File, def *fitcodec.Definition, keepFields, keepDev []int) {
	fields := make([]fitcodec.FieldDef, 0, len(keepFields))
	for _, i := range keepFields {
		fields = append(fields, def.Fields[i])
	}
	devFields := make([]fitcodec.DevFieldDef, 0, len(keepDev))
	for _, i := range keepDev {
		devFields = append(devFields, def.DevFields[i])
	}

	for _, r := range f.Records {
		if r.Kind != fitcodec.KindData || r.Def != def {
			continue
		}
		raws := make([][]byte, 0, len(keepFields))
		for _, i := range keepFields {
			raws = append(raws, r.Fields[i])
		}
		r.Fields = raws

		devRaws := make([][]byte, 0, len(keepDev))
		for _, i := range keepDev {
			devRaws = append(devRaws, r.DevFields[i])
		}
		if len(devRaws) == 0 {
			r.DevFields = nil
		} else {
			r.DevFields = devRaws
		}
	}

	def.Fields = fields
	if len(devFields) == 0 {
		def.DevFields = nil
	} else {
		def.DevFields = devFields
	}
}
