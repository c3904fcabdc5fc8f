package constants

import "fmt"

// Role principal dari identity provider eksternal
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

// Template pesan error role
const (
	ErrOnlyProfessorsCanAccess = "❌ Hanya professor yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess   = "❌ Hanya student yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorProfessor(feature string) string {
	return fmt.Sprintf(ErrOnlyProfessorsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

var AllRoles = []string{
	RoleStudent,
	RoleProfessor,
}
