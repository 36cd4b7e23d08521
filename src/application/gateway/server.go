package gateway

import (
	"net/http"
	"stem-split-worker/src/lib/cerr"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo
	port string
}

func NewServer(gateway Gateway, port string, logRequests bool) Server {
	e := echo.New()
	e.HideBanner = true

	if logRequests {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e.POST("/run", gateway.RunJob)
	e.POST("/runsync", gateway.RunJob)

	e.GET("/status/:id", func(c echo.Context) error {
		jobID := c.Param("id")
		return gateway.GetJobStatus(c, jobID)
	})

	return Server{
		echo: e,
		port: port,
	}
}

func (s Server) Handler() http.Handler {
	return s.echo
}

func (s Server) Start() error {
	err := s.echo.Start(":" + s.port)
	if err != nil && err != http.ErrServerClosed {
		return cerr.Field("port", s.port).Wrap(err).Error("Couldn't start echo server")
	}

	return nil
}

func (s Server) Stop() error {
	if err := s.echo.Close(); err != nil {
		return cerr.Wrap(err).Error("Failed to stop echo server")
	}

	return nil
}
