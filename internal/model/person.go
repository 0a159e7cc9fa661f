package model

import "time"

// Person is a member of staff who can be assigned to inventory.
type Person struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"present"`
	Email      string    `json:"email" validate:"present,email"`
	Role       string    `json:"role" validate:"present"`
	Department string    `json:"department" validate:"present"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Person) GetID() string   { return p.ID }
func (p *Person) SetID(id string) { p.ID = id }
