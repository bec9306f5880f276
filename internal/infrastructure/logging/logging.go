package logging

import (
	"os"

	"go.uber.org/zap"
)

func NewLogger() (*zap.Logger, error) {
	if os.Getenv("LOG_DEV") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
