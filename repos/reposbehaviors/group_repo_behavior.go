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
	uuid "github.com/satori/go.uuid"
)

func BehavesLikeAGroupRepo(
	subjectCreator func() repos.GroupRepo,
	userRepoCreator func() repos.UserRepo,
	operationRepoCreator func() repos.OperationRepo,
) {
	var (
		subject       repos.GroupRepo
		userRepo      repos.UserRepo
		operationRepo repos.OperationRepo

		ctx        context.Context
		cancelFunc context.CancelFunc
		logger     logx.Logger
	)

	BeforeEach(func() {
		subject = subjectCreator()
		userRepo = userRepoCreator()
		operationRepo = operationRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#CreateGroup", func() {
		It("saves the group with its members and assigns an id", func() {
			member, err := userRepo.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			group := someGroup()
			group.Members = []string{member.ID}

			created, err := subject.CreateGroup(ctx, logger, group)

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())

			found, err := subject.FindGroup(ctx, logger, repos.FindGroupQuery{GroupID: created.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(created))
			Expect(found.Members).To(Equal([]string{member.ID}))
		})
	})

	Describe("#FindGroup", func() {
		It("fails if the group does not exist", func() {
			_, err := subject.FindGroup(ctx, logger, repos.FindGroupQuery{GroupID: uuid.NewV4().String()})

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})

	Describe("#UpdateGroup", func() {
		It("replaces the stored record including members", func() {
			member, err := userRepo.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			group, err := subject.CreateGroup(ctx, logger, someGroup())
			Expect(err).NotTo(HaveOccurred())

			group.Title = "Changed"
			group.Members = []string{member.ID}

			err = subject.UpdateGroup(ctx, logger, group)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindGroup(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Changed"))
			Expect(found.Members).To(Equal([]string{member.ID}))
		})

		It("fails if the group does not exist", func() {
			group := someGroup()
			group.ID = uuid.NewV4().String()

			err := subject.UpdateGroup(ctx, logger, group)

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})

	Describe("#DeleteGroup", func() {
		It("removes the group", func() {
			group, err := subject.CreateGroup(ctx, logger, someGroup())
			Expect(err).NotTo(HaveOccurred())

			err = subject.DeleteGroup(ctx, logger, group.ID)
			Expect(err).NotTo(HaveOccurred())

			exists, err := subject.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("fails if the group does not exist", func() {
			err := subject.DeleteGroup(ctx, logger, uuid.NewV4().String())

			Expect(err).To(MatchError(mds.ErrGroupNotFound))
		})
	})

	Describe("#ListGroups", func() {
		It("pages through groups and reports the total", func() {
			for i := 0; i < 3; i++ {
				_, err := subject.CreateGroup(ctx, logger, someGroup())
				Expect(err).NotTo(HaveOccurred())
			}

			page, total, err := subject.ListGroups(ctx, logger, repos.ListGroupsQuery{
				Page: repos.Page{Offset: 1, Amount: 2},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(page).To(HaveLen(2))
		})
	})

	Describe("#ListGroupsByOperation", func() {
		It("lists only groups tied to the operation", func() {
			operation, err := operationRepo.CreateOperation(ctx, logger, someOperation())
			Expect(err).NotTo(HaveOccurred())

			tied := someGroup()
			tied.OperationID = operation.ID
			tiedCreated, err := subject.CreateGroup(ctx, logger, tied)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, someGroup())
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.ListGroupsByOperation(ctx, logger, operation.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].ID).To(Equal(tiedCreated.ID))
		})
	})
}

func someGroup() mds.Group {
	suffix := uuid.NewV4().String()
	return mds.Group{
		Title:       "Group " + suffix,
		Description: "Description " + suffix,
	}
}
