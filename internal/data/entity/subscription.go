package entity

type Subscription struct {
	Base
	Email    string `db:"email"`
	IsActive bool   `db:"is_active"`
}
