package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"

	"github.com/shoestore/database"
	"github.com/shoestore/models"
	"github.com/shoestore/store"
)

// Sessions is the server-side session store. The cookie carries only
// the opaque session id; user id and role live on the server.
var Sessions = session.New(session.Config{
	Expiration:     12 * time.Hour,
	CookieHTTPOnly: true,
})

const currentUserKey = "currentUser"

// LoadUser resolves the session to a user and stashes it in locals.
// Requests without a valid session proceed as unauthenticated guests.
func LoadUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := Sessions.Get(c)
		if err != nil {
			return c.Next()
		}

		userID, ok := sess.Get("user_id").(uint)
		if !ok {
			return c.Next()
		}

		users := store.NewUserStore(database.GetDB())
		user, err := users.Get(userID)
		if err != nil {
			// Stale session for a deleted user: drop it.
			logrus.WithField("user_id", userID).Debug("Session user no longer exists")
			_ = sess.Destroy()
			return c.Next()
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for guests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// CurrentRole returns the caller's effective role; unauthenticated
// callers act as guests.
func CurrentRole(c *fiber.Ctx) models.Role {
	if user := CurrentUser(c); user != nil {
		return user.Role
	}
	return models.RoleGuest
}
