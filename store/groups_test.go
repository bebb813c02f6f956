package store_test

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/repos/inmemory"
	"github.com/mobile-directing-system/mds-store/store"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Groups", func() {
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

	seedGroup := func(title string, memberIDs ...string) mds.Group {
		group, err := repo.CreateGroup(ctx, logger, mds.Group{
			Title:   title,
			Members: memberIDs,
		})
		Expect(err).NotTo(HaveOccurred())
		return group
	}

	Describe("GetGroups", func() {
		It("lists groups with the total count", func() {
			seedGroup("Field")
			seedGroup("Dispatch")
			grant(ctx, logger, repo, alice.ID, mds.PermissionGroupView)
			login(ctx, logger, subject, alice)

			groups, total, err := subject.GetGroups(ctx, logger, repos.ListGroupsQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(2))
			Expect(groups).To(HaveLen(2))
		})

		It("requires group.view", func() {
			login(ctx, logger, subject, alice)

			_, _, err := subject.GetGroups(ctx, logger, repos.ListGroupsQuery{})

			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionGroupView)))
		})
	})

	Describe("GetGroup", func() {
		It("requires group.view", func() {
			group := seedGroup("Field", alice.ID)
			login(ctx, logger, subject, alice)

			_, err := subject.GetGroup(ctx, logger, group.ID)
			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionGroupView)))

			grant(ctx, logger, repo, alice.ID, mds.PermissionGroupView)

			found, err := subject.GetGroup(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Members).To(Equal([]string{alice.ID}))
		})

		It("fails with ErrGroupNotFound for unknown ids", func() {
			login(ctx, logger, subject, admin)

			_, err := subject.GetGroup(ctx, logger, randomID())

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})

	Describe("AddGroup", func() {
		BeforeEach(func() {
			grant(ctx, logger, repo, alice.ID, mds.PermissionGroupCreate)
			login(ctx, logger, subject, alice)
		})

		It("creates the group with its members", func() {
			created, err := subject.AddGroup(ctx, logger, mds.Group{
				Title:   "Field",
				Members: []string{bob.ID, alice.ID},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Members).To(Equal([]string{bob.ID, alice.ID}))
		})

		It("requires group.create", func() {
			login(ctx, logger, subject, bob)

			_, err := subject.AddGroup(ctx, logger, mds.Group{Title: "Field"})

			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionGroupCreate)))
		})

		It("rejects an empty title", func() {
			_, err := subject.AddGroup(ctx, logger, mds.Group{})

			Expect(err).To(MatchError(mds.ErrGroupTitleEmpty))
		})

		It("rejects members that do not exist", func() {
			_, err := subject.AddGroup(ctx, logger, mds.Group{
				Title:   "Field",
				Members: []string{randomID()},
			})

			Expect(err).To(MatchError(mds.ErrGroupMemberNotFound))
		})

		It("rejects an operation that does not exist", func() {
			_, err := subject.AddGroup(ctx, logger, mds.Group{
				Title:       "Field",
				OperationID: randomID(),
			})

			Expect(err).To(MatchError(mds.ErrOperationNotFound))
		})

		It("rejects members outside the group's operation", func() {
			operation, err := repo.CreateOperation(ctx, logger, mds.Operation{Title: "Flood Response"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetOperationMembers(ctx, logger, operation.ID, []string{alice.ID})).To(Succeed())

			_, err = subject.AddGroup(ctx, logger, mds.Group{
				Title:       "Field",
				OperationID: operation.ID,
				Members:     []string{alice.ID, bob.ID},
			})

			Expect(err).To(MatchError(mds.ErrGroupMemberNotInOperation))
		})
	})

	Describe("UpdateGroup", func() {
		It("replaces the stored record", func() {
			group := seedGroup("Field", alice.ID)
			grant(ctx, logger, repo, alice.ID, mds.PermissionGroupUpdate)
			login(ctx, logger, subject, alice)

			group.Title = "Field Team"
			group.Members = []string{bob.ID}
			Expect(subject.UpdateGroup(ctx, logger, group)).To(Succeed())

			stored, err := repo.FindGroup(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Field Team"))
			Expect(stored.Members).To(Equal([]string{bob.ID}))
		})

		It("requires group.update", func() {
			group := seedGroup("Field")
			login(ctx, logger, subject, alice)

			err := subject.UpdateGroup(ctx, logger, group)

			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionGroupUpdate)))
		})

		It("applies the referential rules on update as well", func() {
			group := seedGroup("Field")
			login(ctx, logger, subject, admin)

			group.Members = []string{randomID()}
			err := subject.UpdateGroup(ctx, logger, group)

			Expect(err).To(MatchError(mds.ErrGroupMemberNotFound))
		})

		It("fails with ErrGroupNotFound for unknown ids", func() {
			login(ctx, logger, subject, admin)

			err := subject.UpdateGroup(ctx, logger, mds.Group{ID: randomID(), Title: "Ghost"})

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})

	Describe("DeleteGroup", func() {
		It("deletes the group", func() {
			group := seedGroup("Field")
			grant(ctx, logger, repo, alice.ID, mds.PermissionGroupDelete)
			login(ctx, logger, subject, alice)

			Expect(subject.DeleteGroup(ctx, logger, group.ID)).To(Succeed())

			exists, err := repo.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("requires group.delete", func() {
			group := seedGroup("Field")
			login(ctx, logger, subject, alice)

			err := subject.DeleteGroup(ctx, logger, group.ID)

			Expect(err).To(MatchError(mds.NewErrUnauthorized(mds.PermissionGroupDelete)))
		})

		It("fails with ErrGroupNotFound for unknown ids", func() {
			login(ctx, logger, subject, admin)

			err := subject.DeleteGroup(ctx, logger, randomID())

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})
})
