package server

import (
	"github.com/labstack/echo/v4"
)

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
