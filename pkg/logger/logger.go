// Package logger configures the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// Init builds the global logger. Development mode gets human-readable
// console output, anything else the production JSON encoder.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}
