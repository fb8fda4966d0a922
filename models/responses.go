package models

// VerifyResponse is the result of a credential verification. When IsValid is
// false no other field is populated: missing user, wrong secret and inactive
// account are deliberately indistinguishable to callers, closing the
// login-id enumeration side channel.
type VerifyResponse struct {
	IsValid  bool  `json:"is_valid"`
	UserID   int64 `json:"user_id,omitempty"`
	Role     Role  `json:"role,omitempty"`
	IsActive bool  `json:"is_active,omitempty"`
}

// RoleStatusResponse reports the role and activation state of a user. Used
// by both the role-by-id and status-by-login internal endpoints.
type RoleStatusResponse struct {
	Role     Role `json:"role"`
	IsActive bool `json:"is_active"`
}

// ValidateRoleResponse reports whether a user holds the requested role.
// A mismatch is an expected business outcome, not an error.
type ValidateRoleResponse struct {
	Matches    bool `json:"matches"`
	ActualRole Role `json:"actual_role"`
}

// BulkValidateResponse partitions the requested login ids into existing and
// missing. Every input id lands in exactly one of the two sets, so
// ValidCount+InvalidCount always equals the input size.
type BulkValidateResponse struct {
	Valid        []UserSummary `json:"valid"`
	Invalid      []string      `json:"invalid"`
	ValidCount   int           `json:"valid_count"`
	InvalidCount int           `json:"invalid_count"`
}

// ErrorResponse is the uniform error payload of the HTTP surface. ErrorKind
// is machine-readable; Message is safe for external consumption and never
// carries internal diagnostics.
type ErrorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}
