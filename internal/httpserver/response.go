package httpserver

import (
	"glowcart/internal/domain"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"statusCode": status, "message": message})
}

// currentProfile pulls the profile set by authMiddleware. Handlers on
// authed routes can rely on it being present.
func currentProfile(c *gin.Context) *domain.Profile {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Profile)
	return p
}

func currentUserID(c *gin.Context) string {
	if p := currentProfile(c); p != nil {
		return p.ID
	}
	return ""
}
