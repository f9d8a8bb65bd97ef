// Package fitfaker rewrites the device identity of FIT activity files so
// they present as recordings from a chosen target device. The byte-level
// container work lives in fit-faker/fitcodec; this package knows which
// messages and fields carry identity and how to mutate them.
package fitfaker

// Global message numbers the transform cares about. Everything else passes
// through opaque.
const (
	MsgFileID           uint16 = 0
	MsgSession          uint16 = 18
	MsgLap              uint16 = 19
	MsgRecord           uint16 = 20
	MsgEvent            uint16 = 21
	MsgDeviceInfo       uint16 = 23
	MsgActivity         uint16 = 34
	MsgSoftware         uint16 = 35
	MsgFileCreator      uint16 = 49
	MsgFieldDescription uint16 = 206
	MsgDeveloperDataID  uint16 = 207
)

// file_id fields.
const (
	FileIDType         uint8 = 0
	FileIDManufacturer uint8 = 1
	FileIDProduct      uint8 = 2
	FileIDSerialNumber uint8 = 3
	FileIDTimeCreated  uint8 = 4
	FileIDProductName  uint8 = 8
)

// device_info fields.
const (
	DeviceInfoDeviceIndex     uint8 = 0
	DeviceInfoDeviceType      uint8 = 1
	DeviceInfoManufacturer    uint8 = 2
	DeviceInfoSerialNumber    uint8 = 3
	DeviceInfoProduct         uint8 = 4
	DeviceInfoSoftwareVersion uint8 = 5
	DeviceInfoSourceType      uint8 = 25
	DeviceInfoProductName     uint8 = 27
)

// file_creator fields.
const (
	FileCreatorSoftwareVersion uint8 = 0
	FileCreatorHardwareVersion uint8 = 1
)

// field_description fields (developer field metadata).
const (
	FieldDescDeveloperDataIndex uint8 = 0
	FieldDescFieldDefNumber     uint8 = 1
)

// developer_data_id fields.
const (
	DevDataIDDeveloperDataIndex uint8 = 3
)

// DeviceIndexCreator is the device_index value consumers use to pick the
// primary recording device (and its image/icon).
const DeviceIndexCreator uint64 = 0

// Manufacturer codes from the FIT profile.
const (
	ManufacturerGarmin      uint16 = 1
	ManufacturerWahoo       uint16 = 32
	ManufacturerPeaksware   uint16 = 89
	ManufacturerDevelopment uint16 = 255
	ManufacturerZwift       uint16 = 260
	ManufacturerHammerhead  uint16 = 289
	ManufacturerCOROS       uint16 = 294
	ManufacturerOnelap      uint16 = 307
	ManufacturerMyWhoosh    uint16 = 331
)

// ProductEdge830 is the default target product.
const ProductEdge830 uint16 = 3122
