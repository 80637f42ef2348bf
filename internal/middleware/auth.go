package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentOperatorKey is the gin context key the auth middleware fills.
const CurrentOperatorKey = "currentOperator"

// AuthMiddleware validates the JWT and loads the operator into the gin
// context. The billing engine never sees any of this; authorization is the
// boundary's job.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query param ?token=xxx, for report downloads where setting a
		// header is awkward
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Você precisa estar logado para acessar esta página.")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Sessão expirada, faça login novamente.")
			c.Abort()
			return
		}

		var op models.Operator
		if err := db.First(&op, claims.OperatorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Operador não encontrado.")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar operador.")
			}
			c.Abort()
			return
		}

		c.Set(CurrentOperatorKey, &op)
		c.Next()
	}
}
