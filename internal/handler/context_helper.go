package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/codereg/pkg/middleware/session"
)

func sessionFromContext(c *gin.Context) string {
	return session.ID(c)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
