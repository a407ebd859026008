package appointment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Status of an appointment through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPending: true, StatusConfirmed: true,
	StatusCompleted: true, StatusCancelled: true,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return validStatuses[s] }

// Active reports whether s counts toward the upcoming total. Completed and
// cancelled appointments are explicitly excluded.
func (s Status) Active() bool { return s == StatusPending || s == StatusConfirmed }

// OwnerRef is one owner-identifying field on a record, which legacy payloads
// ship in several shapes: a nested object carrying "_id", a bare id string,
// or nothing at all.
type OwnerRef struct {
	kind ownerKind
	id   string
}

type ownerKind int

const (
	ownerMissing ownerKind = iota
	ownerString
	ownerObject
)

// OwnerString builds the bare-string form of an owner reference.
func OwnerString(id string) OwnerRef { return OwnerRef{kind: ownerString, id: id} }

// OwnerObject builds the nested-object form of an owner reference.
func OwnerObject(id string) OwnerRef { return OwnerRef{kind: ownerObject, id: id} }

// ObjectID returns the nested "_id" and true when the reference is the
// object shape.
func (o OwnerRef) ObjectID() (string, bool) {
	if o.kind != ownerObject {
		return "", false
	}
	return o.id, true
}

// StringID returns the id and true when the reference is the bare-string shape.
func (o OwnerRef) StringID() (string, bool) {
	if o.kind != ownerString {
		return "", false
	}
	return o.id, true
}

// Missing reports whether the reference is absent.
func (o OwnerRef) Missing() bool { return o.kind == ownerMissing }

func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*o = OwnerRef{}
	case string:
		*o = OwnerRef{kind: ownerString, id: v}
	case map[string]interface{}:
		// An object without "_id" (or with a null one) identifies nobody;
		// the resolution chain moves on.
		id, ok := v["_id"]
		if !ok || id == nil {
			*o = OwnerRef{}
			return nil
		}
		switch idv := id.(type) {
		case string:
			*o = OwnerRef{kind: ownerObject, id: idv}
		case float64:
			*o = OwnerRef{kind: ownerObject, id: strconv.FormatFloat(idv, 'f', -1, 64)}
		default:
			*o = OwnerRef{kind: ownerObject, id: fmt.Sprint(idv)}
		}
	default:
		return fmt.Errorf("owner reference must be a string or object, got %T", raw)
	}
	return nil
}

func (o OwnerRef) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case ownerString:
		return json.Marshal(o.id)
	case ownerObject:
		return json.Marshal(map[string]string{"_id": o.id})
	default:
		return []byte("null"), nil
	}
}

// DoctorInfo is the denormalized doctor summary embedded in a record.
type DoctorInfo struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

// Record is one appointment as stored and as served to the portal. The
// owner may appear under four legacy field names; OwnerID resolves them.
type Record struct {
	ID              string      `json:"id"`
	Patient         OwnerRef    `json:"patient"`
	PatientID       *string     `json:"patientId,omitempty"`
	User            OwnerRef    `json:"user"`
	UserID          *string     `json:"userId,omitempty"`
	Doctor          *DoctorInfo `json:"doctor,omitempty"`
	DoctorID        string      `json:"doctorId,omitempty"`
	AppointmentDate string      `json:"appointmentDate"`
	AppointmentTime string      `json:"appointmentTime"`
	Status          Status      `json:"status"`
	Reason          string      `json:"reason,omitempty"`
	Symptoms        string      `json:"symptoms,omitempty"`
	CreatedAt       time.Time   `json:"created_at,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at,omitempty"`
}

// OwnerID resolves the patient this record belongs to. Patient-shaped
// fields are always tried before user-shaped fields:
//
//	patient object "_id" > patient bare string > patientId >
//	user object "_id" > user bare string > userId
//
// The first present value wins, even when empty; a record identifying
// nobody resolves to "", which never matches a real patient id. Malformed
// records never error.
func (r *Record) OwnerID() string {
	if id, ok := r.Patient.ObjectID(); ok {
		return id
	}
	if id, ok := r.Patient.StringID(); ok {
		return id
	}
	if r.PatientID != nil {
		return *r.PatientID
	}
	if id, ok := r.User.ObjectID(); ok {
		return id
	}
	if id, ok := r.User.StringID(); ok {
		return id
	}
	if r.UserID != nil {
		return *r.UserID
	}
	return ""
}

// Day parses the record's date as a calendar day in the local time zone.
// Timestamps are tolerated; only the date portion is considered.
func (r *Record) Day() (time.Time, bool) {
	return parseDay(r.AppointmentDate)
}

func parseDay(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", s[:10], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
