package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoZapLogger returns an Echo middleware that logs every request with zap.
func EchoZapLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestFields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.String("user_agent", req.UserAgent()),
			}
			if id := req.Header.Get(echo.HeaderXRequestID); id != "" {
				requestFields = append(requestFields, zap.String("request_id", id))
			}

			err := next(c)

			fields := append(requestFields,
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			)

			if err != nil {
				log.Error("Handler error", append(fields, zap.Error(err))...)
				return err
			}

			switch n := res.Status; {
			case n >= http.StatusInternalServerError:
				log.Error("Server error", fields...)
			case n >= http.StatusBadRequest:
				log.Warn("Client error", fields...)
			default:
				log.Info("Success", fields...)
			}
			return nil
		}
	}
}
