package log

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's logging through the shared logrus instance.
type GormLogger struct {
	Log                   *log.Logger
	SlowThreshold         time.Duration
	SkipErrRecordNotFound bool
	LogLevel              gormlogger.LogLevel
}

func NewGormLogger() *GormLogger {
	return &GormLogger{
		Log:                   Default.WithField("component", "gorm").Logger,
		SkipErrRecordNotFound: true,
		LogLevel:              gormlogger.Warn,
		SlowThreshold:         100 * time.Millisecond,
	}
}

func (l *GormLogger) LogMode(lv gormlogger.LogLevel) gormlogger.Interface {
	ret := *l
	ret.LogLevel = lv
	return &ret
}

func (l *GormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	l.Log.WithContext(ctx).Infof(s, args...)
}

func (l *GormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	l.Log.WithContext(ctx).Warnf(s, args...)
}

func (l *GormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	l.Log.WithContext(ctx).Errorf(s, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.SkipErrRecordNotFound):
		sql, _ := fc()
		l.Log.WithContext(ctx).WithField(log.ErrorKey, err).Errorf("[%s] %s", elapsed, sql)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		sql, _ := fc()
		l.Log.WithContext(ctx).Warnf("[slow sql] [%s] %s", elapsed, sql)
	case l.LogLevel == gormlogger.Info:
		sql, _ := fc()
		l.Log.WithContext(ctx).Infof("[%s] %s", elapsed, sql)
	}
}
