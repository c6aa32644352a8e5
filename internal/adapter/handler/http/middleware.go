package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const actorKey = "actor"

func authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		abort := func(err error) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		}

		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			abort(domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			abort(domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			abort(domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		actor, err := tokenService.VerifyToken(token)
		if err != nil {
			abort(domain.ErrInvalidToken)
			return
		}

		ctx.Set(actorKey, actor)

		ctx.Next()
	}
}

func getActor(ctx *gin.Context) domain.Actor {
	return *ctx.MustGet(actorKey).(*domain.Actor)
}
