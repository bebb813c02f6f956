package store

const (
	success = "success"

	errUserNotFound      = "user-not-found"
	errOperationNotFound = "operation-not-found"
	errGroupNotFound     = "group-not-found"

	errNotAuthorized = "not-authorized"
	errInvalidInput  = "invalid-input"

	failedToFindUser        = "failed-to-find-user"
	failedToListPermissions = "failed-to-list-permissions"
)

// Security event signatures and names, emitted through the SecurityLogger.
const (
	sigLogin         = "Login"
	sigLogout        = "Logout"
	nameLoginSuccess = "session-login-success"
	nameLoginFailure = "session-login-failure"
	nameLogout       = "session-logout"
	nameAuthzDenied  = "authorization-denied"
)
