package models

import "time"

// Member represents an association member (associado).
// NextDueDate is nil until the member is billed for the first time; once
// set it always holds a concrete calendar date produced by the due-date
// calculator or by payment registration, never a bare day-of-month.
type Member struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;index" json:"nome"`
	BirthDate   string `gorm:"size:20" json:"data_nascimento"`
	CPF         string `gorm:"size:20" json:"cpf"`
	RG          string `gorm:"size:20" json:"rg"`
	Dependents  string `gorm:"type:text" json:"dependentes"`
	Phone       string `gorm:"size:20" json:"numero"`
	PostalCode  string `gorm:"size:10" json:"cep"`
	Street      string `gorm:"size:200" json:"endereco"`
	HouseNumber string `gorm:"size:10" json:"numero_casa"`
	District    string `gorm:"size:100" json:"bairro"`
	City        string `gorm:"size:100" json:"cidade"`
	State       string `gorm:"size:2" json:"estado"`

	NextDueDate *time.Time `gorm:"index" json:"proximo_pagamento"`
	EnrolledOn  time.Time  `gorm:"index;not null" json:"data_registro"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookings []Booking `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Payments []Payment `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}
