package mds

var (
	ErrUserNotFound      = NewErrNotFound("user")
	ErrUserAlreadyExists = NewErrAlreadyExists("user")
	ErrUserAmbiguous     = NewErrAmbiguous("user")

	ErrOperationNotFound = NewErrNotFound("operation")
	ErrGroupNotFound     = NewErrNotFound("group")

	ErrUserUsernameEmpty  = NewErrInvalidInput("user", "username cannot be empty")
	ErrUserFirstNameEmpty = NewErrInvalidInput("user", "first name cannot be empty")
	ErrUserLastNameEmpty  = NewErrInvalidInput("user", "last name cannot be empty")
	ErrUserPasswordEmpty  = NewErrInvalidInput("user", "password cannot be empty")

	ErrOperationTitleEmpty     = NewErrInvalidInput("operation", "title cannot be empty")
	ErrOperationEndBeforeStart = NewErrInvalidInput("operation", "end must be after start")

	ErrGroupTitleEmpty           = NewErrInvalidInput("group", "title cannot be empty")
	ErrGroupMemberNotFound       = NewErrInvalidInput("group", "member does not exist")
	ErrGroupMemberNotInOperation = NewErrInvalidInput("group", "member is not a member of the group's operation")
)
