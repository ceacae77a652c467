package dto

import "time"

// CreateCompanyRequest body para crear una empresa (master). Crea también el
// usuario admin inicial del tenant. Los campos db_* son el descriptor de
// conexión del almacén aislado (variante base-por-tenant); se omiten en
// tenancy compartida.
type CreateCompanyRequest struct {
	Tag          string `json:"tag"`
	Descricao    string `json:"descricao"`
	AdminUsuario string `json:"admin_usuario"`
	AdminNome    string `json:"admin_nome"`
	AdminSenha   string `json:"admin_senha"`

	DBHost     string `json:"db_host,omitempty"`
	DBPort     int    `json:"db_port,omitempty"`
	DBUser     string `json:"db_user,omitempty"`
	DBPassword string `json:"db_password,omitempty"`
	DBName     string `json:"db_name,omitempty"`
	DBSSLMode  string `json:"db_sslmode,omitempty"`
}

// UpdateCompanyRequest body para editar tag y descripción.
type UpdateCompanyRequest struct {
	Tag       string `json:"tag"`
	Descricao string `json:"descricao"`
}

// CompanyResponse representación de una empresa en respuestas. El descriptor
// de conexión nunca se serializa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Descricao string    `json:"descricao"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Success bool              `json:"success"`
	Itens   []CompanyResponse `json:"itens"`
}
