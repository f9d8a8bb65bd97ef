package fitcodec

// Raw field value access and mutation. Values are read and written through
// the governing definition's declared byte order and base type; only the
// first element of an array-sized field is touched.

// FieldUint reads field num of a data record as an unsigned integer. The
// second return is false when the field is absent from the definition or
// its base type has no integer reading.
func (r *Record) FieldUint(num uint8) (uint64, bool) {
	if r.Kind != KindData {
		return 0, false
	}
	i := r.Def.FieldIndex(num)
	if i < 0 || i >= len(r.Fields) {
		return 0, false
	}
	elem, ok := BaseTypeSize(r.Def.Fields[i].BaseType)
	if !ok || elem == 0 || len(r.Fields[i]) < elem {
		return 0, false
	}
	raw := r.Fields[i][:elem]
	arch := r.Def.Arch()
	switch elem {
	case 1:
		return uint64(raw[0]), true
	case 2:
		return uint64(arch.Uint16(raw)), true
	case 4:
		return uint64(arch.Uint32(raw)), true
	case 8:
		return arch.Uint64(raw), true
	}
	return 0, false
}

// SetFieldUint overwrites field num of a data record with an unsigned
// integer value, encoded per the definition's byte order and base type
// size. Returns false when the field is absent.
func (r *Record) SetFieldUint(num uint8, v uint64) bool {
	if r.Kind != KindData {
		return false
	}
	i := r.Def.FieldIndex(num)
	if i < 0 || i >= len(r.Fields) {
		return false
	}
	elem, ok := BaseTypeSize(r.Def.Fields[i].BaseType)
	if !ok || elem == 0 || len(r.Fields[i]) < elem {
		return false
	}
	raw := r.Fields[i][:elem]
	arch := r.Def.Arch()
	switch elem {
	case 1:
		raw[0] = byte(v)
	case 2:
		arch.PutUint16(raw, uint16(v))
	case 4:
		arch.PutUint32(raw, uint32(v))
	case 8:
		arch.PutUint64(raw, v)
	default:
		return false
	}
	return true
}

// FieldString reads a string field up to its NUL terminator.
func (r *Record) FieldString(num uint8) (string, bool) {
	if r.Kind != KindData {
		return "", false
	}
	i := r.Def.FieldIndex(num)
	if i < 0 || i >= len(r.Fields) {
		return "", false
	}
	raw := r.Fields[i]
	for j, b := range raw {
		if b == 0 {
			return string(raw[:j]), true
		}
	}
	return string(raw), true
}

// ClearField overwrites field num with its base type's not-set fill.
func (r *Record) ClearField(num uint8) bool {
	if r.Kind != KindData {
		return false
	}
	i := r.Def.FieldIndex(num)
	if i < 0 || i >= len(r.Fields) {
		return false
	}
	fill := InvalidFill(r.Def.Fields[i].BaseType)
	raw := r.Fields[i]
	for j := range raw {
		raw[j] = fill
	}
	return true
}

// EnsureField adds a field to a definition, padding every data record in
// the sequence bound to that definition with a not-set value of the new
// field. No-op when the field is already declared. Definitions are shared
// pointers, so a single call keeps the whole sequence consistent.
func (f *File) EnsureField(def *Definition, fd FieldDef) {
	if def.FieldIndex(fd.Num) >= 0 {
		return
	}
	def.Fields = append(def.Fields, fd)

	fill := InvalidFill(fd.BaseType)
	pad := make([]byte, fd.Size)
	for i := range pad {
		pad[i] = fill
	}
	for _, r := range f.Records {
		if r.Kind == KindData && r.Def == def {
			r.Fields = append(r.Fields, append([]byte(nil), pad...))
		}
	}
}

// DropField removes a field from a definition and positionally from every
// data record bound to it. No-op when the field is absent.
func (f *File) DropField(def *Definition, num uint8) {
	i := def.FieldIndex(num)
	if i < 0 {
		return
	}
	def.Fields = append(def.Fields[:i], def.Fields[i+1:]...)
	for _, r := range f.Records {
		if r.Kind == KindData && r.Def == def && i < len(r.Fields) {
			r.Fields = append(r.Fields[:i], r.Fields[i+1:]...)
		}
	}
}
