package pages

import (
	"context"

	"locotranz/internal/api"
	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"
)

// LoginController drives the login and signup pages.
type LoginController struct {
	Ctx
}

// Login authenticates, stores the session record and reports where the
// user should land next based on their role.
func (c LoginController) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = utils.TrimOrEmpty(email)
	if email == "" {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "required"}
	}
	if password == "" {
		return models.User{}, "", domain.ValidationError{Field: "password", Msg: "required"}
	}

	user, err := c.API.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		if domain.IsUnavailable(err) {
			c.notify().Error("Connection failed. The server might be waking up, please try again.")
		} else {
			c.notify().Error("Invalid email or password.")
		}
		return models.User{}, "", err
	}

	if err := c.Session.SaveUser(user); err != nil {
		return models.User{}, "", domain.InternalError{Msg: "save session", Err: err}
	}

	c.notify().Success("Welcome back, " + user.FullName + "!")
	if user.IsAdmin() {
		return user, RedirectAdmin, nil
	}
	return user, RedirectHome, nil
}

// Signup validates locally first; nothing goes over the wire until the
// form is coherent.
func (c LoginController) Signup(ctx context.Context, fullName, email, password, confirm string) error {
	fullName = utils.TrimOrEmpty(fullName)
	email = utils.TrimOrEmpty(email)
	switch {
	case fullName == "":
		return domain.ValidationError{Field: "full_name", Msg: "required"}
	case email == "":
		return domain.ValidationError{Field: "email", Msg: "required"}
	case password == "":
		return domain.ValidationError{Field: "password", Msg: "required"}
	case password != confirm:
		c.notify().Error("Passwords do not match!")
		return domain.ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
	}

	_, err := c.API.Register(ctx, api.Registration{
		Name:     utils.UsernameFromEmail(email),
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     domain.RoleUser,
	})
	if err != nil {
		c.notify().Error("Signup failed: " + err.Error())
		return err
	}

	c.notify().Success("Account created successfully! Please login.")
	return nil
}

// Logout clears the stored session.
func (c LoginController) Logout() error {
	return c.Session.ClearUser()
}

// RequireUser returns the stored session or the login redirect.
func (c LoginController) RequireUser() (models.User, string, error) {
	user, ok, err := c.Session.User()
	if err != nil {
		return models.User{}, "", err
	}
	if !ok {
		return models.User{}, RedirectLogin, domain.UnauthorizedError{Msg: "not logged in"}
	}
	return user, "", nil
}
