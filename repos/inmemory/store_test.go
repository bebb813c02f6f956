package inmemory_test

import (
	. "github.com/mobile-directing-system/mds-store/repos/inmemory"

	"github.com/mobile-directing-system/mds-store/repos"
	. "github.com/mobile-directing-system/mds-store/repos/reposbehaviors"
	. "github.com/onsi/ginkgo"
)

var _ = Describe("Store", func() {
	var (
		store *Store
	)

	BeforeEach(func() {
		store = NewStore()
	})

	Describe("as a user repo", func() {
		BehavesLikeAUserRepo(func() repos.UserRepo { return store })
	})
	Describe("as an operation repo", func() {
		BehavesLikeAnOperationRepo(
			func() repos.OperationRepo { return store },
			func() repos.UserRepo { return store },
		)
	})
	Describe("as a group repo", func() {
		BehavesLikeAGroupRepo(
			func() repos.GroupRepo { return store },
			func() repos.UserRepo { return store },
			func() repos.OperationRepo { return store },
		)
	})
	Describe("as a permission repo", func() {
		BehavesLikeAPermissionRepo(
			func() repos.PermissionRepo { return store },
			func() repos.UserRepo { return store },
		)
	})
})
