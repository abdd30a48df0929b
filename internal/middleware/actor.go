package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
	"github.com/rs/zerolog/log"
)

const actorKey = "actor"

// Actor resolves who is calling from an optional bearer token. Requests
// without a valid token are attributed to the system actor.
func Actor(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := domain.Actor{IPAddress: c.RealIP()}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && jwtSecret != "" {
				user, err := utils.ParseJWTToken(strings.TrimSpace(token), jwtSecret)
				if err != nil {
					log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "Actor").Msg("ignoring invalid token")
				} else {
					actor.ID = user.UserID
				}
			}

			c.Set(actorKey, actor)

			return next(c)
		}
	}
}

// GetActor returns the actor resolved by Actor, falling back to the system
// actor when the middleware did not run.
func GetActor(c echo.Context) domain.Actor {
	if actor, ok := c.Get(actorKey).(domain.Actor); ok {
		return actor
	}

	return domain.Actor{IPAddress: c.RealIP()}
}
