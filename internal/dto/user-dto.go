package dto

import "github.com/aarondl/null/v8"

type UserDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	Bio       null.String `json:"bio"`
	CreatedAt string      `json:"created_at"`
}

type CreateUserDTO struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"omitempty,role_name"`
	Bio      *string `json:"bio" validate:"omitempty,max=100"`
}

type UpdateUserDTO struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,role_name"`
	Bio      *string `json:"bio" validate:"omitempty,max=100"`
}
