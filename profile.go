package fitfaker

// DeviceProfile is the target identity a file is rewritten to present.
// It is read-only configuration; nothing in it is derived from the input.
type DeviceProfile struct {
	Manufacturer    uint16
	Product         uint16
	SerialNumber    uint32
	SoftwareVersion uint16 // FIT-scaled firmware version (975 == v9.75), 0 skips file_creator content
	HardwareVersion uint8
}

const defaultSerialNumber = 1234567890

// DefaultProfile returns the Garmin Edge 830 identity historically used as
// the default rewrite target.
func DefaultProfile() DeviceProfile {
	return DeviceProfile{
		Manufacturer:    ManufacturerGarmin,
		Product:         ProductEdge830,
		SerialNumber:    defaultSerialNumber,
		SoftwareVersion: 975,
	}
}

// Quirks selects source-profile-specific leniencies and fixes. The engine
// stays a pure function of (bytes, profile, quirks); every quirk is
// independently testable.
type Quirks struct {
	// LenientFieldSize keeps field definitions whose declared size
	// disagrees with the base type's element size instead of dropping
	// them; the raw bytes are carried at the declared size.
	LenientFieldSize bool

	// ManufacturerFilter restricts identity rewriting to files whose
	// original manufacturer code is in the set. Empty means rewrite
	// unconditionally.
	ManufacturerFilter []uint16

	// EnforceActivityOrder moves activity messages after their session
	// messages; required by at least one downstream consumer.
	EnforceActivityOrder bool
}

func (q Quirks) allowsFileID(manufacturer uint64) bool {
	if len(q.ManufacturerFilter) == 0 {
		return true
	}
	for _, m := range q.ManufacturerFilter {
		if uint64(m) == manufacturer {
			return true
		}
	}
	return false
}

// Blank manufacturers (code 0) are rewritable in device_info even under a
// filter: several platforms leave the field unset there.
func (q Quirks) allowsDeviceInfo(manufacturer uint64) bool {
	return manufacturer == 0 || q.allowsFileID(manufacturer)
}

// RewriteManufacturers is the set of virtual-platform manufacturer codes
// whose files are rewritten when a filter is requested.
func RewriteManufacturers() []uint16 {
	return []uint16{
		ManufacturerDevelopment,
		ManufacturerWahoo,
		ManufacturerPeaksware,
		ManufacturerZwift,
		ManufacturerHammerhead,
		ManufacturerCOROS,
		ManufacturerOnelap,
		ManufacturerMyWhoosh,
	}
}
