package domain

import "time"

type User struct {
	Username   string    `db:"username"`
	Password   string    `db:"password"` // bcrypt hashed
	Firstname  string    `db:"firstname"`
	Lastname   string    `db:"lastname"`
	Membership bool      `db:"membership"`
	Admin      bool      `db:"admin"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func NewUser(username, hashedPassword, firstname, lastname string) *User {
	now := time.Now()
	return &User{
		Username:   username,
		Password:   hashedPassword,
		Firstname:  firstname,
		Lastname:   lastname,
		Membership: false,
		Admin:      false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
