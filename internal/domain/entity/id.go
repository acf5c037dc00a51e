package entity

import (
	"math"

	"github.com/google/uuid"
)

// MaxQuantity límite de las columnas INTEGER de cantidades.
const MaxQuantity = math.MaxInt32

// IsValidID indica si id tiene forma de UUID. Un id malformado no puede existir en la BD.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
