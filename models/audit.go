package models

import (
	"encoding/json"
	"time"
)

// AuditAction identifies the kind of state change an audit entry records.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionActivate   AuditAction = "ACTIVATE"
	AuditActionInactivate AuditAction = "INACTIVATE"
)

// Valid reports whether the action is a member of the closed enumeration.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionActivate, AuditActionInactivate:
		return true
	}

	return false
}

func (a AuditAction) String() string {
	return string(a)
}

// AuditEntry is an immutable record of a single state-changing operation on
// a user. Entries are written in the same transaction as the mutation they
// describe and are never updated or deleted afterwards.
type AuditEntry struct {
	// AuditID is the surrogate identifier assigned monotonically by the
	// database.
	AuditID int64 `json:"audit_id"`

	// UserID references the affected user. The reference is weak: the
	// entry outlives any later state of the record and is never
	// reassigned.
	UserID int64 `json:"user_id"`

	// Action is the kind of state change recorded.
	Action AuditAction `json:"action"`

	// OldData is the credential-free snapshot of the user before the
	// mutation. Absent for CREATE.
	OldData json.RawMessage `json:"old_data,omitempty"`

	// NewData is the credential-free snapshot of the user after the
	// mutation.
	NewData json.RawMessage `json:"new_data,omitempty"`

	// CreatedAt is assigned by the database at write time.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuditEntry model.
func (a AuditEntry) TableName() string {
	return "audit_log"
}
