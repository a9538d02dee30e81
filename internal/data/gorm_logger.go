package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's logging through the Kratos logger. SQL statements
// are logged at debug level; errors and queries slower than slowThreshold at
// warn level.
type GormLogger struct {
	log           *log.Helper
	slowThreshold time.Duration
}

// NewGormLogger creates a GORM logger backed by logger. A zero slowThreshold
// disables slow query warnings.
func NewGormLogger(logger log.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		log:           log.NewHelper(log.With(logger, "module", "gorm")),
		slowThreshold: slowThreshold,
	}
}

// LogMode returns the logger itself; levels are filtered by the Kratos logger.
func (g *GormLogger) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return g
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	g.log.WithContext(ctx).Debugf(msg, data...)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	g.log.WithContext(ctx).Warnf(msg, data...)
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	g.log.WithContext(ctx).Errorf(msg, data...)
}

// Trace logs one executed statement. Record-not-found and duplicate key
// errors are expected outcomes of the catalog and are not reported as warnings.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	h := g.log.WithContext(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		h.Warnw("msg", "query error", "sql", sql, "rows_affected", rows, "duration_ms", elapsed.Milliseconds(), "error", err)
	case g.slowThreshold > 0 && elapsed > g.slowThreshold:
		h.Warnw("msg", "slow query", "sql", sql, "rows_affected", rows, "duration_ms", elapsed.Milliseconds(),
			"threshold", fmt.Sprint(g.slowThreshold))
	default:
		h.Debugw("msg", "sql query", "sql", sql, "rows_affected", rows, "duration_ms", elapsed.Milliseconds())
	}
}
