package dto

// RegisterRequest entrada para registro: crea usuario y tienda por defecto.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary campos públicos del usuario.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse salida de registro y login. StoreID solo en registro.
type AuthResponse struct {
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
	StoreID string      `json:"storeId,omitempty"`
}
