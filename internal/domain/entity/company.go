package entity

import "time"

// StoreConnection descriptor de conexión del almacén aislado de un tenant
// (variante base-de-datos-por-tenant). Nil cuando el tenant vive en el
// almacén compartido.
type StoreConnection struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Company representa un tenant del sistema. Tag es el identificador de
// login, único y normalizado a minúsculas. Desactivar una empresa bloquea
// los logins de sus usuarios sin borrar sus datos.
type Company struct {
	ID        string
	Tag       string
	Name      string
	Active    bool
	Conn      *StoreConnection
	CreatedAt time.Time
	UpdatedAt time.Time
}
