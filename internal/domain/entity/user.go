package entity

// User representa una cuenta de acceso al sistema (una fila de users.csv).
// Username es único dentro de la colección.
type User struct {
	Username     string
	PasswordHash string // digest hex de longitud fija, nunca el password plano
}
