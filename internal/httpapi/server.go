// Package httpapi serves board actions over HTTP and provides the matching
// remote client.
package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/contract"
)

const maxBodySize = 1 << 20

// Authenticator resolves the caller from an Authorization header.
type Authenticator interface {
	PrincipalFromHeader(header string) (auth.Principal, error)
}

// New builds the echo server for acts. Every /api route requires a bearer
// token accepted by authn.
func New(acts *app.Actions, authn Authenticator, log logrus.FieldLogger) *echo.Echo {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency / time.Millisecond,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api", authenticate(authn))
	api.GET("/boards", listBoards(acts))
	api.POST("/boards", createBoard(acts))
	api.POST("/boards/import", importBoard(acts))
	api.GET("/boards/:boardId", getBoard(acts))
	api.PATCH("/boards/:boardId", updateBoard(acts))
	api.DELETE("/boards/:boardId", deleteBoard(acts))
	api.POST("/boards/:boardId/lists", createList(acts))
	api.POST("/boards/:boardId/lists/order", reorderLists(acts))
	api.POST("/boards/:boardId/cards/order", reorderCards(acts))
	api.PATCH("/lists/:listId", updateList(acts))
	api.DELETE("/lists/:listId", deleteList(acts))
	api.POST("/lists/:listId/cards", createCard(acts))
	api.GET("/cards/:cardId", getCard(acts))
	api.PATCH("/cards/:cardId", updateCard(acts))
	api.DELETE("/cards/:cardId", deleteCard(acts))

	return e
}

func authenticate(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := authn.PrincipalFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "Unauthorized", Code: contract.ErrUnauthorized})
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}
