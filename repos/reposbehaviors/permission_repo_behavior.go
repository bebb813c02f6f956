package reposbehaviors

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
	"github.com/mobile-directing-system/mds-store/repos"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func BehavesLikeAPermissionRepo(
	subjectCreator func() repos.PermissionRepo,
	userRepoCreator func() repos.UserRepo,
) {
	var (
		subject  repos.PermissionRepo
		userRepo repos.UserRepo

		ctx        context.Context
		cancelFunc context.CancelFunc
		logger     logx.Logger

		user mds.User
	)

	BeforeEach(func() {
		subject = subjectCreator()
		userRepo = userRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-test"))

		var err error
		user, err = userRepo.CreateUser(ctx, logger, someUser())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#ListUserPermissions", func() {
		It("returns an empty list for a user without grants", func() {
			permissions, err := subject.ListUserPermissions(ctx, logger, repos.ListUserPermissionsQuery{UserID: user.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(BeEmpty())
		})
	})

	Describe("#SetUserPermissions", func() {
		It("replaces the grant list wholesale", func() {
			granted := []mds.Permission{
				{Name: mds.PermissionUserView},
				{Name: mds.PermissionGroupView, Options: map[string]interface{}{"scope": "all"}},
			}

			err := subject.SetUserPermissions(ctx, logger, user.ID, granted)
			Expect(err).NotTo(HaveOccurred())

			permissions, err := subject.ListUserPermissions(ctx, logger, repos.ListUserPermissionsQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(Equal(granted))

			err = subject.SetUserPermissions(ctx, logger, user.ID, []mds.Permission{
				{Name: mds.PermissionOperationViewAny},
			})
			Expect(err).NotTo(HaveOccurred())

			permissions, err = subject.ListUserPermissions(ctx, logger, repos.ListUserPermissionsQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(Equal([]mds.Permission{{Name: mds.PermissionOperationViewAny}}))
		})
	})
}
