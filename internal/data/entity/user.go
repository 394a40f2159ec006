package entity

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
	RoleSupervisor UserRole = "supervisor"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Role         UserRole `db:"role"`
	Phone        *string  `db:"phone"`
	IsActive     bool     `db:"is_active"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
