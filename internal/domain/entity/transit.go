package entity

import "time"

// TransitRecord orden de ensamble en camino hacia el cliente.
type TransitRecord struct {
	OrderID   string
	Article   string
	CreatedAt time.Time
	Office    string // primera oficina de la lista, o vacío
}

// NewTransitRecord arma el registro tomando la primera oficina disponible.
func NewTransitRecord(orderID, article, createdAt string, offices []string) TransitRecord {
	office := ""
	if len(offices) > 0 {
		office = offices[0]
	}
	return TransitRecord{
		OrderID:   orderID,
		Article:   article,
		CreatedAt: ParseTimestamp(createdAt),
		Office:    office,
	}
}
