package request

type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,strongpassword"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin user supervisor"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password  *string `json:"password,omitempty" validate:"omitempty,strongpassword"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin user supervisor"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	IsActive  *bool   `json:"isActive,omitempty"`
}
