package entity

import "time"

// Roles de firma canónicos (valores persistidos en el perfil del usuario).
const (
	RoleSectionChief        = "JEFE_SECCION"
	RoleProductionChief     = "JEFE_PRODUCCION"
	RoleQualityInspector    = "INSPECTOR_CALIDAD"
	RolePharmaceuticChemist = "QUIMICO_FARMACEUTICO"
)

// User representa un usuario del sistema. El rol vive en su Profile; sin perfil no puede firmar.
type User struct {
	ID           string
	RUT          string // identificador nacional, usado como credencial de firma
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt
	Active       bool
	Profile      *Profile
	CreatedAt    time.Time
	LastAccessAt *time.Time
}

// FullName nombre para metadatos de auditoría.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// Profile datos profesionales del usuario, incluido el rol de firma.
type Profile struct {
	UserID        string
	Role          string
	Department    string
	LicenseNumber string
}
