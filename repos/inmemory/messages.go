package inmemory

const (
	success = "success"

	errUserNotFound      = "user-not-found"
	errUserAlreadyExists = "user-already-exists"
	errUserAmbiguous     = "user-ambiguous"

	errOperationNotFound = "operation-not-found"
	errGroupNotFound     = "group-not-found"
)
