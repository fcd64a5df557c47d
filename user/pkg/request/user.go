package request

import "encoding/json"

type Register struct {
	Username string `validate:"required,min=3,max=32" json:"username"`
	Email    string `validate:"required,email"        json:"email"`
	Password string `validate:"required,min=8"        json:"password"`
}

// MarshalJSON masks the password so request logging never leaks it.
func (r Register) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"username": r.Username,
		"email":    r.Email,
		"password": "***",
	})
}

type Login struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=8" json:"password"`
}

// MarshalJSON masks the password so request logging never leaks it.
func (l Login) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"email":    l.Email,
		"password": "***",
	})
}
