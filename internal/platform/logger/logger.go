package logger

import "go.uber.org/zap"

// New builds the process-wide zap logger: development config for the "dev"
// environment, production config otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "dev" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
