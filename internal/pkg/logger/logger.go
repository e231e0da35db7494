package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger for the given environment: human-readable console
// output in development, JSON in everything else.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed builds an environment-appropriate logger tagged with the service
// name so aggregated logs can be filtered per service.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", service)), nil
}
