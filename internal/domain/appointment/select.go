package appointment

import "time"

// now is stubbed in tests.
var now = time.Now

// today returns local midnight of the current day.
func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Selection is the patient-scoped view derived from the full collection.
// It is rebuilt wholesale on every load cycle.
type Selection struct {
	Appointments  []*Record `json:"appointments"`
	UpcomingCount int       `json:"upcoming_count"`
}

// SelectForPatient walks the collection once and keeps the records owned by
// patientID in their original order, counting the upcoming ones as it goes.
// An upcoming record is dated today or later (date-only, local midnight) with
// an active status.
//
// An empty patientID short-circuits to an empty Selection: an unresolved or
// unauthenticated caller must never see another patient's records.
func SelectForPatient(all []*Record, patientID string) Selection {
	sel := Selection{Appointments: []*Record{}}
	if patientID == "" {
		return sel
	}

	midnight := today()
	for _, r := range all {
		if r == nil || r.OwnerID() != patientID {
			continue
		}
		sel.Appointments = append(sel.Appointments, r)
		if !r.Status.Active() {
			continue
		}
		if day, ok := r.Day(); ok && !day.Before(midnight) {
			sel.UpcomingCount++
		}
	}
	return sel
}

// Trend is one month bucket of appointment volume.
type Trend struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
