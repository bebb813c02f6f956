package store_test

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos/inmemory"
	"github.com/mobile-directing-system/mds-store/store"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Permissions", func() {
	var (
		repo    *inmemory.Store
		subject *store.Store

		ctx    context.Context
		logger logx.Logger

		admin mds.User
		alice mds.User
		bob   mds.User
	)

	BeforeEach(func() {
		repo, subject = newTestStore()
		ctx = context.Background()
		logger = testLogger()

		admin = seedUser(ctx, logger, repo, "admin", true)
		alice = seedUser(ctx, logger, repo, "alice", false)
		bob = seedUser(ctx, logger, repo, "bob", false)
	})

	Describe("GetPermissions", func() {
		It("lets a principal read their own permission set without grants", func() {
			grant(ctx, logger, repo, alice.ID, mds.PermissionUserView)
			login(ctx, logger, subject, alice)

			permissions, err := subject.GetPermissions(ctx, logger, alice.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(Equal([]mds.Permission{{Name: mds.PermissionUserView}}))
		})

		It("requires permissions.view for other users", func() {
			login(ctx, logger, subject, alice)

			_, err := subject.GetPermissions(ctx, logger, bob.ID)
			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionPermissionsView)))

			grant(ctx, logger, repo, alice.ID, mds.PermissionPermissionsView)

			permissions, err := subject.GetPermissions(ctx, logger, bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(BeEmpty())
		})

		It("fails with ErrUserNotFound for unknown users", func() {
			login(ctx, logger, subject, admin)

			_, err := subject.GetPermissions(ctx, logger, randomID())

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("SetPermissions", func() {
		It("replaces the permission set wholesale", func() {
			grant(ctx, logger, repo, bob.ID, mds.PermissionUserView, mds.PermissionGroupView)
			login(ctx, logger, subject, admin)

			updated := []mds.Permission{
				{Name: mds.PermissionGroupCreate, Options: map[string]interface{}{"scope": "field"}},
			}
			Expect(subject.SetPermissions(ctx, logger, bob.ID, updated)).To(Succeed())

			stored, err := subject.GetPermissions(ctx, logger, bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(updated))
		})

		It("requires permissions.update even for the principal's own set", func() {
			login(ctx, logger, subject, alice)

			err := subject.SetPermissions(ctx, logger, alice.ID, []mds.Permission{
				{Name: mds.PermissionUserView},
			})

			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionPermissionsUpdate)))
		})

		It("fails with ErrUserNotFound for unknown users", func() {
			login(ctx, logger, subject, admin)

			err := subject.SetPermissions(ctx, logger, randomID(), nil)

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})
})
