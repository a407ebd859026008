package identity

import "time"

// User is a portal account holder. Accounts migrated from the legacy record
// store carry both ids: LegacyID ("_id") is the storage-layer id, ID ("id")
// the auth-layer id. The storage-layer id wins whenever both are present.
type User struct {
	ID             string    `db:"id" json:"id,omitempty"`
	LegacyID       string    `db:"legacy_id" json:"_id,omitempty"`
	Name           string    `db:"name" json:"name"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Role           string    `db:"role" json:"role"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ResolveUserID normalizes a user into a single comparable id string. The
// legacy storage-layer id is strictly preferred over the auth-layer id.
// A nil user resolves to "", which never matches a real patient id.
func ResolveUserID(u *User) string {
	if u == nil {
		return ""
	}
	if u.LegacyID != "" {
		return u.LegacyID
	}
	return u.ID
}

// Doctor is the directory view of a practitioner account exposed to the
// booking form.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// AsDoctor projects a practitioner user into its directory view.
func (u *User) AsDoctor() Doctor {
	d := Doctor{ID: ResolveUserID(u), Name: u.Name}
	if u.Specialization != nil {
		d.Specialization = *u.Specialization
	}
	return d
}

// Stats is the account-level aggregate returned by GetStats.
type Stats struct {
	TotalPatients int `json:"total_patients"`
	TotalDoctors  int `json:"total_doctors"`
}
