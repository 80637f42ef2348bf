package models

import "time"

// Ticket is an internal support request (chamado).
type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Subject     string    `gorm:"size:150;not null" json:"assunto"`
	Description string    `gorm:"type:text;not null" json:"descricao"`
	Requester   string    `gorm:"size:100;not null" json:"solicitante"`
	Status      string    `gorm:"size:50;default:aberto" json:"status"`
	CreatedAt   time.Time `json:"data_registro"`
}
