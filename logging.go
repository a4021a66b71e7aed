// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "github.com/sirupsen/logrus"

// newLogger builds the manager's structured logger, replacing the source
// library's compile-time debug build tag with a runtime Loglevel option:
// 0 and below keep errors only, 1 info, 2 debug, 3 and above trace. The
// package's own messages (GC start and end, every recorded error) are all
// logged at debug level, so they appear from level 2 on.
func newLogger(level int) *logrus.Entry {
	l := logrus.New()
	switch {
	case level <= 0:
		l.SetLevel(logrus.ErrorLevel)
	case level == 1:
		l.SetLevel(logrus.InfoLevel)
	case level == 2:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.TraceLevel)
	}
	return l.WithField("component", "dd")
}
