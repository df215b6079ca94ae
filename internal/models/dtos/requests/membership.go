package requests

// GrantMembershipRequest is the body of POST /memberships/{role}.
// Attributes are role specific (privilegios, cargo, area_atuacao,
// disponibilidade, frequencia) and validated by the service.
type GrantMembershipRequest struct {
	UserID     string         `json:"user_id" validate:"required,uuid"`
	ProjectID  string         `json:"project_id" validate:"required,uuid"`
	Attributes map[string]any `json:"attributes"`
}

// UpdateMembershipRequest carries only the attributes to change.
type UpdateMembershipRequest struct {
	Attributes map[string]any `json:"attributes" validate:"required"`
}
