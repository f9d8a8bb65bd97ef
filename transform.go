package fitfaker

import (
	"fmt"

	"fit-faker/fitcodec"
)

// Result carries the transformed bytes plus diagnostics. Warnings are
// non-fatal; a Result with warnings is still a complete, valid output.
type Result struct {
	Bytes    []byte
	Warnings []Warning

	// InputCRCValid reports whether the input trailer CRC matched its
	// bytes. A mismatch is diagnostic only: the trailer is recomputed on
	// output regardless.
	InputCRCValid bool
	RecordCount   int
}

// Transform rewrites a FIT byte stream to present as the target profile's
// device. It is a pure function of (data, profile, quirks): decode,
// sanitize malformed field definitions, rewrite identity messages, enforce
// message order where requested, re-encode with fresh sizes and CRC.
//
// Any returned error aborts the whole file; no partial output is produced.
func Transform(data []byte, profile DeviceProfile, quirks Quirks) (*Result, error) {
	f, err := fitcodec.Decode(data)
	if err != nil {
		return nil, err
	}

	res := &Result{InputCRCValid: f.CRCValid()}
	res.Warnings = Sanitize(f, quirks)

	if err := Rewrite(f, profile, quirks); err != nil {
		return nil, err
	}
	if quirks.EnforceActivityOrder {
		if err := EnforceActivityOrder(f); err != nil {
			return nil, err
		}
	}

	out, err := fitcodec.Encode(f)
	if err != nil {
		return nil, fmt.Errorf("encode transformed file: %w", err)
	}
	res.Bytes = out
	res.RecordCount = len(f.Records)
	return res, nil
}
