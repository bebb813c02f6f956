package cmd

import "errors"

var (
	ErrMigrationsOutOfSync = errors.New("migrations out of sync: not all migrations applied")
	ErrSeedLoginFailed     = errors.New("seed: login with the admin account failed")
	ErrProbeLoginFailed    = errors.New("monitor: login with the probe account failed")
)
