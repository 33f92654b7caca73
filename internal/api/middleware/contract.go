package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder приемник HTTP метрик
type MetricsRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}
