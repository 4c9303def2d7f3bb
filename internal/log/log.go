// Package log is a thin zap wrapper with request-aware helpers: every entry
// carries an action name plus whatever the fiber context knows about the
// request (id, method, path, status).
package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var base = zap.NewNop()

// Init builds the process logger at the given level and installs it for the
// package helpers. The returned logger should be Synced at shutdown.
func Init(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	lg, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}
	base = lg
	return lg, nil
}

func write(lvl func(string, ...zap.Field), c *fiber.Ctx, action string, err error, fields map[string]any) {
	zf := make([]zap.Field, 0, len(fields)+5)
	if c != nil {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
	}
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	lvl(action, zf...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Info, c, action, nil, fields)
}

// Audit records state-changing business operations.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Info, c, action, nil, fields)
}

func Warn(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Warn, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(base.Error, c, action, err, fields)
}
