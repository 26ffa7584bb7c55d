package entity

import "time"

// Seller vendedor registrado: su token del marketplace y el chat donde recibe avisos.
type Seller struct {
	ID        int64 // identificador del usuario en el mensajero
	Username  string
	WBToken   string // en claro en memoria; cifrado en reposo
	ChatID    string
	CreatedAt time.Time
}
