package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avtonomer/platemarket/app/repository"
	"github.com/avtonomer/platemarket/internal/pkg/session"
	"github.com/avtonomer/platemarket/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a request-scoped user
// context. Every handler downstream reads identity only through
// usercontext.GetUserContext; an anonymous context is set when the session
// is missing or carries no user.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous user
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)

	// Determine subscription plan with session-first strategy
	plan := session.GetSessionValue(c, usercontext.KeyUserPlan)
	if plan == "" {
		plan = "free"
		repo := repository.GetGlobalFactory().GetUserRepository()
		if user, err := repo.GetByID(userID.(uint)); err == nil && user.Plan != "" {
			plan = user.Plan
		}
		// cache in session for subsequent requests
		_ = session.SetSessionValue(c, usercontext.KeyUserPlan, plan)
	}

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		Plan:       plan,
	})
	c.Locals(usercontext.KeyFromProtected, true)

	return c.Next()
}
