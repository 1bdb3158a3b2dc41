package cookie

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName matches the cookie set by the platform identity
// service on browser logins.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
