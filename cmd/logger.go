package main

import (
	"strings"

	logrus "github.com/sirupsen/logrus"
)

var logger = logrus.New()

// logrusWriter routes the http.Server error log into logrus.
type logrusWriter struct {
	logger logrus.FieldLogger
}

func (w *logrusWriter) Write(b []byte) (int, error) {
	n := len(b)
	b = []byte(strings.TrimSpace(string(b)))
	w.logger.Warning(string(b))
	return n, nil
}
