package cmd

const (
	adminAlreadySeeded = "admin-already-seeded"

	failedToOpenSecurityLogFile = "failed-to-open-security-log-file"

	failedToConnectToStatsD = "failed-to-connect-to-statsd"
	probeRunFailed          = "probe-run-failed"
)
