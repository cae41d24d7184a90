package entity

import (
	"strings"
	"time"
)

// Store pertenece a exactamente un User (user_id único). El nombre es único en todo el sistema.
type Store struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy indica si la tienda pertenece al usuario.
func (s *Store) OwnedBy(userID string) bool {
	return s != nil && s.UserID == userID
}

// DefaultStoreDescription descripción de la tienda creada en el registro.
const DefaultStoreDescription = "My inventory store"

// DefaultStoreName deriva el nombre de la tienda creada en el registro: "alice's Store" para alice@x.com.
func DefaultStoreName(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	return local + "'s Store"
}
