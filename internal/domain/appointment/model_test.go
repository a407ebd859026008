package appointment

import (
	"encoding/json"
	"testing"
)

func strptr(s string) *string { return &s }

func TestOwnerRefUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want OwnerRef
	}{
		{name: "object with id", in: `{"_id":"p1","name":"Pat"}`, want: OwnerObject("p1")},
		{name: "bare string", in: `"p2"`, want: OwnerString("p2")},
		{name: "null", in: `null`, want: OwnerRef{}},
		{name: "object without id", in: `{"name":"Pat"}`, want: OwnerRef{}},
		{name: "object with null id", in: `{"_id":null}`, want: OwnerRef{}},
		{name: "numeric id coerced", in: `{"_id":42}`, want: OwnerObject("42")},
		{name: "empty string kept", in: `""`, want: OwnerString("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref OwnerRef
			if err := json.Unmarshal([]byte(tt.in), &ref); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if ref != tt.want {
				t.Errorf("got %+v, want %+v", ref, tt.want)
			}
		})
	}
}

func TestOwnerRefUnmarshal_RejectsArrays(t *testing.T) {
	var ref OwnerRef
	if err := json.Unmarshal([]byte(`["p1"]`), &ref); err == nil {
		t.Fatal("expected error for array owner reference")
	}
}

func TestOwnerRefMarshal_RoundTrip(t *testing.T) {
	for _, ref := range []OwnerRef{OwnerObject("p1"), OwnerString("p2"), {}} {
		data, err := json.Marshal(ref)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back OwnerRef
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != ref {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, ref)
		}
	}
}

func TestRecordMarshal_MissingOwnersAreNull(t *testing.T) {
	// Missing owner refs serialize as explicit nulls, matching the legacy
	// payload shape; omitempty cannot elide a struct-typed field.
	data, err := json.Marshal(&Record{ID: "a1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"patient", "user"} {
		raw, ok := out[field]
		if !ok {
			t.Errorf("%s field missing from output", field)
			continue
		}
		if string(raw) != "null" {
			t.Errorf("%s = %s, want null", field, raw)
		}
	}
}

func TestOwnerID_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "patient object wins over everything",
			rec: Record{
				Patient:   OwnerObject("obj"),
				PatientID: strptr("pid"),
				User:      OwnerObject("uobj"),
				UserID:    strptr("uid"),
			},
			want: "obj",
		},
		{
			name: "patient string beats patientId",
			rec:  Record{Patient: OwnerString("pstr"), PatientID: strptr("pid")},
			want: "pstr",
		},
		{
			name: "patientId beats user fields",
			rec:  Record{PatientID: strptr("pid"), User: OwnerObject("uobj")},
			want: "pid",
		},
		{
			name: "user object beats user string",
			rec:  Record{User: OwnerObject("uobj"), UserID: strptr("uid")},
			want: "uobj",
		},
		{
			name: "only userId",
			rec:  Record{UserID: strptr("u1")},
			want: "u1",
		},
		{
			name: "nothing set",
			rec:  Record{},
			want: "",
		},
		{
			name: "present empty patientId terminates the chain",
			rec:  Record{PatientID: strptr(""), UserID: strptr("uid")},
			want: "",
		},
		{
			name: "patient object without id falls through",
			rec:  Record{Patient: OwnerRef{}, UserID: strptr("uid")},
			want: "uid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.OwnerID(); got != tt.want {
				t.Errorf("OwnerID() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestRecordDay(t *testing.T) {
	r := Record{AppointmentDate: "2026-03-15T14:30:00Z"}
	day, ok := r.Day()
	if !ok {
		t.Fatal("expected parseable day")
	}
	if day.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("Day() = %s; want 2026-03-15", day.Format("2006-01-02"))
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Error("day must be at local midnight")
	}

	for _, bad := range []string{"", "2026", "not-a-date-x"} {
		r := Record{AppointmentDate: bad}
		if _, ok := r.Day(); ok {
			t.Errorf("expected unparseable day for %q", bad)
		}
	}
}

func TestRecordUnmarshal_LegacyShapes(t *testing.T) {
	payload := `{
		"id": "a1",
		"patient": {"_id": "p1", "name": "Pat"},
		"userId": "u1",
		"appointmentDate": "2026-03-20",
		"appointmentTime": "10:00",
		"status": "pending"
	}`
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := rec.OwnerID(); got != "p1" {
		t.Errorf("OwnerID() = %q; want p1", got)
	}
	if rec.UserID == nil || *rec.UserID != "u1" {
		t.Error("userId should still be decoded")
	}
}
