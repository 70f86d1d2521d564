package logger

import "go.uber.org/zap"

// New builds the application logger. Development mode gets human-readable
// console output; otherwise JSON suitable for log aggregation.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
