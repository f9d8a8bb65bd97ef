package fitfaker

import "fit-faker/fitcodec"

// EnforceActivityOrder moves activity data records to the end of the
// sequence so that no activity message precedes the session message it
// closes. At least one consumer profile rejects files where the activity
// record comes first. The move is stable: every other record keeps its
// relative order, and the encoder re-emits any definition the moved
// records depend on.
//
// A file that contains activity records but no session record at all has
// no coherent closure to fix and is rejected with an OrderingError.
func EnforceActivityOrder(f *fitcodec.File) error {
	var activities []*fitcodec.Record
	sessionSeen := false
	kept := make([]*fitcodec.Record, 0, len(f.Records))
	for _, r := range f.Records {
		if r.IsData(MsgSession) {
			sessionSeen = true
		}
		if r.IsData(MsgActivity) {
			activities = append(activities, r)
			continue
		}
		kept = append(kept, r)
	}
	if len(activities) == 0 {
		return nil
	}
	if !sessionSeen {
		return &OrderingError{Msg: "activity message present but no session message to precede it"}
	}
	f.Records = append(kept, activities...)
	return nil
}
