package sqlx

import (
	"github.com/mobile-directing-system/mds-store/logx"
)

// Commit resolves a transaction: rollback when the work errored, commit
// otherwise. The returned error supersedes err only when commit fails.
func Commit(logger logx.Logger, tx *Tx, err error) error {
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			logger.Error(failedToRollback, rollbackErr)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		logger.Error(failedToCommit, err)
		return err
	}

	logger.Debug(committed)
	return nil
}
