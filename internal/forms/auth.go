package forms

import (
	"net/http"
	"regexp"
	"strings"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type SignupForm struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Errors    Errors
}

func ParseSignupForm(r *http.Request) *SignupForm {
	return &SignupForm{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		Errors:    Errors{},
	}
}

func (f *SignupForm) Validate() bool {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	switch {
	case f.Username == "":
		f.Errors.Add("username", msgRequired)
	case len(f.Username) > maxUsernameLength:
		f.Errors.Add("username", "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(f.Username):
		f.Errors.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	switch {
	case f.Email == "":
		f.Errors.Add("email", msgRequired)
	case !strings.Contains(f.Email, "@") || strings.HasPrefix(f.Email, "@") || strings.HasSuffix(f.Email, "@"):
		f.Errors.Add("email", "Enter a valid email address.")
	}

	switch {
	case f.Password == "":
		f.Errors.Add("password1", msgRequired)
	case len([]rune(f.Password)) < minPasswordLength:
		f.Errors.Add("password1", "This password is too short. It must contain at least 8 characters.")
	}

	if f.Password2 == "" {
		f.Errors.Add("password2", msgRequired)
	} else if f.Password != f.Password2 {
		f.Errors.Add("password2", "The two password fields didn't match.")
	}

	return f.Errors.Valid()
}

type LoginForm struct {
	Username string
	Password string
	Next     string
	Errors   Errors
}

func ParseLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Next:     r.FormValue("next"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		f.Errors.Add("password", msgRequired)
	}
	return f.Errors.Valid()
}
