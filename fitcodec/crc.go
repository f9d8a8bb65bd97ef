package fitcodec

import "github.com/tormoder/fit/dyncrc16"

// Checksum computes the FIT CRC-16 over data. It is used both to validate
// input trailers (diagnostic only) and to produce the mandatory output
// trailer.
func Checksum(data []byte) uint16 {
	return dyncrc16.Checksum(data)
}
