package handlers

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user's id stored by the JWT
// middleware, or "" when the request is unauthenticated.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}
