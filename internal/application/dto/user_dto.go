package dto

import "time"

// CreateUserRequest body para crear un usuario del tenant (admin).
type CreateUserRequest struct {
	Usuario string `json:"usuario"`
	Nome    string `json:"nome"`
	Senha   string `json:"senha"`
	IsAdmin bool   `json:"is_admin"`
}

// UpdateUserRequest body para editar un usuario. Senha vacía conserva la
// contraseña actual.
type UpdateUserRequest struct {
	Usuario *string `json:"usuario"`
	Nome    *string `json:"nome"`
	Senha   *string `json:"senha"`
	IsAdmin *bool   `json:"is_admin"`
	Ativo   *bool   `json:"ativo"`
}

// UserResponse representación de un usuario en respuestas. Nunca incluye el
// hash de la contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	Usuario   string    `json:"usuario"`
	Nome      string    `json:"nome"`
	IsAdmin   bool      `json:"is_admin"`
	IsMaster  bool      `json:"is_master,omitempty"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado de usuarios del tenant.
type UserListResponse struct {
	Success bool           `json:"success"`
	Itens   []UserResponse `json:"itens"`
}
