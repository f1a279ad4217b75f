package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Claims are the bearer token claims issued by the identity provider
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates the HMAC-signed bearer token and stores the caller in locals
func JWTMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fail(c, fiber.StatusUnauthorized, "Invalid token format")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		userID := claims.UserID
		if userID == "" {
			userID = claims.Subject
		}
		c.Locals("userID", userID)
		c.Locals("userEmail", claims.Email)

		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}

// requireSiteOwner stops requests for a site the caller did not register
func (s *Server) requireSiteOwner(c *fiber.Ctx) error {
	site, err := s.services.Sites.GetSite(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	if site.OwnerID == "" || site.OwnerID != currentUser(c) {
		return fiber.NewError(fiber.StatusForbidden, "site belongs to another user")
	}
	c.Locals("site", site)
	return c.Next()
}
