package httpd

import (
	"errors"
	"fixtured/ctx"
	"fixtured/library/errs"
	"fixtured/schema"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"net/http"
	"time"
)

const requestIDKey = "requestid"

func (s *Server) contextMiddleware(c *fiber.Ctx) error {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		c.SetUserContext(ctx.WithRequestID(c.UserContext(), id))
	}
	return c.Next()
}

func (s *Server) loggerMiddleware(c *fiber.Ctx) error {
	t0 := time.Now()
	err := c.Next()
	t1 := time.Now()

	resp := c.Response()
	ctx.Logger(c.UserContext()).Infof("%v %v %d %v %db",
		c.Method(), c.OriginalURL(), resp.StatusCode(), t1.Sub(t0).Truncate(time.Microsecond), resp.Header.ContentLength())
	return err
}

// errorMiddleware renders errors and panics in place, so the logger sees the final status.
func (s *Server) errorMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		e := recover()
		if e == nil {
			return
		}

		ctx.Logger(c.UserContext()).Warnf("Panic %v %v %v", c.Method(), c.OriginalURL(), e)
		err = s.errorHandler(c, errs.Recovered(e))
	}()

	err = c.Next()
	if err == nil {
		return nil
	}
	return s.errorHandler(c, err)
}

// errorHandler writes a plain text "<status>: <reason>" response.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	log := ctx.Logger(c.UserContext())

	status := http.StatusInternalServerError
	var fiberErr *fiber.Error
	if appErr, ok := schema.NewErrorFromErr(err); ok {
		status = appErr.Status()
		log.Debugf("%v %v: %v", c.Method(), c.OriginalURL(), appErr.String())
	} else if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		log.Debugf("%v %v: %v", c.Method(), c.OriginalURL(), fiberErr.Message)
	} else {
		log.Errorf("Internal server error, err=%v", err)
		status = schema.ErrInternal.Status()
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(fmt.Sprintf("%d: %s", status, http.StatusText(status)))
}
