package db

const (
	failedToStartTransaction = "failed-to-start-transaction"

	failedToCountRowsAffected = "failed-to-count-rows-affected"
	failedToScanRow           = "failed-to-scan-row"
	failedToIterateOverRows   = "failed-to-iterate-over-rows"
	failedToCountRows         = "failed-to-count-rows"

	errUserAlreadyExists = "user-already-exists"
	errUserNotFound      = "user-not-found"

	failedToCreateUser      = "failed-to-create-user"
	failedToFindUser        = "failed-to-find-user"
	failedToUpdateUser      = "failed-to-update-user"
	failedToSetUserPassword = "failed-to-set-user-password"
	failedToListUsers       = "failed-to-list-users"
	failedToSearchUsers     = "failed-to-search-users"

	errOperationNotFound = "operation-not-found"

	failedToCreateOperation      = "failed-to-create-operation"
	failedToFindOperation        = "failed-to-find-operation"
	failedToUpdateOperation      = "failed-to-update-operation"
	failedToListOperations       = "failed-to-list-operations"
	failedToSearchOperations     = "failed-to-search-operations"
	failedToListOperationMembers = "failed-to-list-operation-members"
	failedToSetOperationMembers  = "failed-to-set-operation-members"

	errGroupNotFound = "group-not-found"

	failedToCreateGroup = "failed-to-create-group"
	failedToFindGroup   = "failed-to-find-group"
	failedToUpdateGroup = "failed-to-update-group"
	failedToDeleteGroup = "failed-to-delete-group"
	failedToListGroups  = "failed-to-list-groups"

	failedToListPermissions = "failed-to-list-permissions"
	failedToSetPermissions  = "failed-to-set-permissions"
	failedToEncodeOptions   = "failed-to-encode-permission-options"
	failedToDecodeOptions   = "failed-to-decode-permission-options"
)
