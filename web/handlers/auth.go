package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/shoestore/auth"
	"github.com/shoestore/database"
	"github.com/shoestore/store"
	"github.com/shoestore/web/middleware"
)

type loginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

// Login authenticates the caller and opens a session
func Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	authenticator := auth.NewAuthenticator(store.NewUserStore(database.GetDB()))
	user, err := authenticator.Login(req.Login, req.Password)
	if err != nil {
		return fail(c, err)
	}

	sess, err := middleware.Sessions.Get(c)
	if err != nil {
		return fail(c, err)
	}
	sess.Set("user_id", user.UserID)
	if err := sess.Save(); err != nil {
		return fail(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"login": user.Login,
		"role":  user.Role,
	}).Info("User logged in")

	return c.JSON(fiber.Map{"user": user})
}

// Logout clears all session state
func Logout(c *fiber.Ctx) error {
	sess, err := middleware.Sessions.Get(c)
	if err != nil {
		return fail(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Me returns the current session's user
func Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(fiber.Map{"user": nil, "role": middleware.CurrentRole(c)})
	}
	return c.JSON(fiber.Map{"user": user, "role": user.Role})
}
