package dto

// RegisterUserRequest defines the data needed to register a user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token for subsequent requests.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
	UserID    string `json:"userID"`
}

// SelectCompanyRequest asks for a company token for the given company.
type SelectCompanyRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
}

// CompanyTokenResponse returns the short-lived active-company token.
type CompanyTokenResponse struct {
	CompanyToken string `json:"companyToken"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
	CompanyID    string `json:"companyID"`
}
