package requests

type CreateProjectRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Phone     string  `json:"phone" validate:"omitempty,max=30"`
	AddressID *string `json:"address_id" validate:"omitempty,max=64"`
}

// UpdateProjectRequest is a partial update: nil fields are left untouched.
type UpdateProjectRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	AddressID *string `json:"address_id" validate:"omitempty,max=64"`
}
