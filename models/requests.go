package models

// CreateUserRequest is the payload accepted by the public create-user
// endpoint. Role is optional and defaults to CUSTOMER.
type CreateUserRequest struct {
	LoginID     string `json:"login_id"`
	DisplayName string `json:"display_name"`
	Secret      string `json:"password"`
	Role        string `json:"role,omitempty"`
}

// UpdateUserRequest is the payload accepted by the public edit-user
// endpoint. Absent fields are left unchanged (partial update semantics).
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Secret      *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
}

// Empty reports whether the request supplies no fields at all.
func (r UpdateUserRequest) Empty() bool {
	return r.DisplayName == nil && r.Secret == nil && r.Role == nil
}

// VerifyRequest is the payload accepted by the internal credential
// verification endpoint.
type VerifyRequest struct {
	LoginID string `json:"login_id"`
	Secret  string `json:"password"`
}

// ValidateRoleRequest asks whether a user holds a specific role.
type ValidateRoleRequest struct {
	LoginID      string `json:"login_id"`
	RequiredRole string `json:"required_role"`
}

// BulkValidateRequest carries the set of login ids to check for existence.
type BulkValidateRequest struct {
	LoginIDs []string `json:"login_ids"`
}
