package handlers

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/storage"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	data := signupPage{
		basePage: basePage{Viewer: s.viewer(r)},
		Form:     &forms.SignupForm{Errors: forms.Errors{}},
	}

	if r.Method == http.MethodPost {
		form := forms.ParseSignupForm(r)
		data.Form = form

		if form.Validate() {
			_, err := s.Users.RegisterUser(form.Username, form.Email, form.Password)
			switch {
			case errors.Is(err, storage.ErrAlreadyExists):
				form.Errors.Add("username", "A user with that username already exists.")
			case err != nil:
				s.fail(w, r, err)
				return
			default:
				if err := s.startSession(w, form.Username, form.Password); err != nil {
					s.fail(w, r, err)
					return
				}
				s.redirect(w, r, http.StatusSeeOther, "index")
				return
			}
		}
	}

	s.render(w, r, http.StatusOK, "users/signup.html", data)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	data := loginPage{
		basePage: basePage{Viewer: s.viewer(r)},
		Form:     &forms.LoginForm{Next: r.URL.Query().Get("next"), Errors: forms.Errors{}},
	}

	if r.Method == http.MethodPost {
		form := forms.ParseLoginForm(r)
		data.Form = form

		if form.Validate() {
			err := s.startSession(w, form.Username, form.Password)
			switch {
			case errors.Is(err, storage.ErrInvalidCredentials):
				form.Errors.Add(forms.NonField, "Please enter a correct username and password.")
			case err != nil:
				s.fail(w, r, err)
				return
			default:
				http.Redirect(w, r, auth.SafeNext(form.Next, s.mustReverse("index")), http.StatusSeeOther)
				return
			}
		}
	}

	s.render(w, r, http.StatusOK, "users/login.html", data)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	s.render(w, r, http.StatusOK, "users/logged_out.html", basePage{})
}

// startSession checks the credentials and sets the session cookie.
func (s *Server) startSession(w http.ResponseWriter, username, password string) error {
	_, token, err := s.Users.LoginUser(username, password)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(w, token, s.cfg.SessionTTL)
	return nil
}
