package dto

type SignupDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=100"`
}

type RequestCodeDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ExchangeCodeDTO struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

type RefreshTokenDTO struct {
	Refresh string `json:"refresh" validate:"required"`
}

type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessTokenDTO struct {
	Access string `json:"access"`
}
