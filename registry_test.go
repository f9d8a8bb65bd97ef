package fitfaker

import "testing"

func TestLookupDevice(t *testing.T) {
	d, ok := LookupDevice("edge 830")
	if !ok {
		t.Fatal("expected lookup to be case insensitive")
	}
	if d.ProductID != ProductEdge830 {
		t.Fatalf("unexpected product id: %d", d.ProductID)
	}
	if _, ok := LookupDevice("edge 9999"); ok {
		t.Fatal("expected unknown device to miss")
	}
}

func TestTargetDeviceProfile(t *testing.T) {
	d, _ := LookupDevice("Fenix 7")

	p := d.Profile(42)
	if p.Manufacturer != ManufacturerGarmin || p.Product != d.ProductID || p.SerialNumber != 42 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.SoftwareVersion != d.SoftwareVersion {
		t.Fatalf("software version not carried: %d", p.SoftwareVersion)
	}

	if got := d.Profile(0).SerialNumber; got != defaultSerialNumber {
		t.Fatalf("zero serial should pick the default, got %d", got)
	}
}

func TestLookupPlatform(t *testing.T) {
	p, ok := LookupPlatform("COROS")
	if !ok {
		t.Fatal("expected lookup to be case insensitive")
	}
	if !p.Quirks.EnforceActivityOrder {
		t.Fatal("coros preset must enforce activity order")
	}
	if len(p.Quirks.ManufacturerFilter) == 0 {
		t.Fatal("platform presets must carry the manufacturer filter")
	}

	zwift, _ := LookupPlatform("zwift")
	if !zwift.Quirks.LenientFieldSize {
		t.Fatal("zwift preset must be lenient about field sizes")
	}

	if _, ok := LookupPlatform("strava"); ok {
		t.Fatal("expected unknown platform to miss")
	}
}

func TestQuirksManufacturerFilter(t *testing.T) {
	q := Quirks{ManufacturerFilter: RewriteManufacturers()}

	if !q.allowsFileID(uint64(ManufacturerZwift)) {
		t.Fatal("zwift must be rewritable")
	}
	if q.allowsFileID(uint64(ManufacturerGarmin)) {
		t.Fatal("garmin files must pass through under the filter")
	}
	if !q.allowsDeviceInfo(0) {
		t.Fatal("blank device_info manufacturers must stay rewritable")
	}
	if (Quirks{}).allowsFileID(uint64(ManufacturerGarmin)) != true {
		t.Fatal("empty filter must allow everything")
	}
}
