package fitfaker

import "strings"

// TargetDevice is one curated rewrite target: a Garmin unit with its FIT
// product id and a plausible firmware version for the file_creator message.
type TargetDevice struct {
	Name            string
	ProductID       uint16
	SoftwareVersion uint16
	Category        string
}

// TargetDevices lists the supported rewrite targets. Product ids follow the
// FIT SDK device id table.
var TargetDevices = []TargetDevice{
	{Name: "Edge 830", ProductID: 3122, SoftwareVersion: 975, Category: "bike_computer"},
	{Name: "Edge 530", ProductID: 3121, SoftwareVersion: 975, Category: "bike_computer"},
	{Name: "Edge 840", ProductID: 4062, SoftwareVersion: 2922, Category: "bike_computer"},
	{Name: "Edge 540", ProductID: 4061, SoftwareVersion: 2922, Category: "bike_computer"},
	{Name: "Edge 1040", ProductID: 3843, SoftwareVersion: 2922, Category: "bike_computer"},
	{Name: "Edge 1050", ProductID: 4440, SoftwareVersion: 2922, Category: "bike_computer"},
	{Name: "Edge 1030 Plus", ProductID: 3570, SoftwareVersion: 675, Category: "bike_computer"},
	{Name: "Fenix 7", ProductID: 3906, SoftwareVersion: 2511, Category: "multisport_watch"},
	{Name: "Fenix 8 47mm", ProductID: 4536, SoftwareVersion: 2029, Category: "multisport_watch"},
	{Name: "Epix Gen 2", ProductID: 3943, SoftwareVersion: 2511, Category: "multisport_watch"},
	{Name: "Forerunner 955", ProductID: 4024, SoftwareVersion: 2709, Category: "multisport_watch"},
	{Name: "Forerunner 965", ProductID: 4315, SoftwareVersion: 2709, Category: "multisport_watch"},
}

// LookupDevice finds a target device by case-insensitive name.
func LookupDevice(name string) (TargetDevice, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, d := range TargetDevices {
		if strings.ToLower(d.Name) == needle {
			return d, true
		}
	}
	return TargetDevice{}, false
}

// Profile builds a DeviceProfile presenting as the device with the given
// serial number (0 picks the package default).
func (d TargetDevice) Profile(serial uint32) DeviceProfile {
	if serial == 0 {
		serial = defaultSerialNumber
	}
	return DeviceProfile{
		Manufacturer:    ManufacturerGarmin,
		Product:         d.ProductID,
		SerialNumber:    serial,
		SoftwareVersion: d.SoftwareVersion,
	}
}

// Platform describes one source recording application and the quirk policy
// its files need.
type Platform struct {
	Name         string
	Manufacturer uint16
	Quirks       Quirks
}

// Platforms lists the known source platforms. Quirk selections come from
// observed file defects: Zwift definitions disagree with canonical field
// sizes, COROS emits the activity message before its session.
var Platforms = []Platform{
	{Name: "zwift", Manufacturer: ManufacturerZwift, Quirks: Quirks{LenientFieldSize: true, ManufacturerFilter: RewriteManufacturers()}},
	{Name: "tpv", Manufacturer: ManufacturerPeaksware, Quirks: Quirks{ManufacturerFilter: RewriteManufacturers()}},
	{Name: "mywhoosh", Manufacturer: ManufacturerMyWhoosh, Quirks: Quirks{ManufacturerFilter: RewriteManufacturers()}},
	{Name: "coros", Manufacturer: ManufacturerCOROS, Quirks: Quirks{ManufacturerFilter: RewriteManufacturers(), EnforceActivityOrder: true}},
	{Name: "karoo", Manufacturer: ManufacturerHammerhead, Quirks: Quirks{ManufacturerFilter: RewriteManufacturers()}},
	{Name: "onelap", Manufacturer: ManufacturerOnelap, Quirks: Quirks{ManufacturerFilter: RewriteManufacturers()}},
}

// LookupPlatform finds a platform preset by case-insensitive name.
func LookupPlatform(name string) (Platform, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Platforms {
		if p.Name == needle {
			return p, true
		}
	}
	return Platform{}, false
}
