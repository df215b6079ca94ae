package requests

type RegisterUserRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	NationalID string `json:"cpf" validate:"required,min=11,max=14"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
}
