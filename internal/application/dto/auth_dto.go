package dto

// LoginRequest credenciales de login: tag de la empresa (o "master"),
// username y contraseña.
type LoginRequest struct {
	Empresa string `json:"empresa"`
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// LoginResponse token de sesión más la identidad resuelta.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Empresa string       `json:"empresa,omitempty"` // tag del tenant, vacío para master
}
