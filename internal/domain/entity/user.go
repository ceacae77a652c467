package entity

import "time"

// User representa un usuario del sistema. Pertenece a exactamente una
// Company, salvo los usuarios master (CompanyID vacío) que administran el
// directorio de tenants y no poseen datos de inventario.
type User struct {
	ID           string
	CompanyID    string // vacío para usuarios master
	Username     string // único dentro de su empresa (o del ámbito master)
	Name         string
	PasswordHash string // bcrypt, nunca plano después de persistir
	IsAdmin      bool
	IsMaster     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
