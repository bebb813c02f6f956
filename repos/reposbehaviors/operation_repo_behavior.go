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

func BehavesLikeAnOperationRepo(
	subjectCreator func() repos.OperationRepo,
	userRepoCreator func() repos.UserRepo,
) {
	var (
		subject  repos.OperationRepo
		userRepo repos.UserRepo

		ctx        context.Context
		cancelFunc context.CancelFunc
		logger     logx.Logger
	)

	BeforeEach(func() {
		subject = subjectCreator()
		userRepo = userRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#CreateOperation", func() {
		It("saves the operation and assigns an id", func() {
			operation, err := subject.CreateOperation(ctx, logger, someOperation())

			Expect(err).NotTo(HaveOccurred())
			Expect(operation.ID).NotTo(BeEmpty())

			found, err := subject.FindOperation(ctx, logger, repos.FindOperationQuery{OperationID: operation.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(operation))
		})
	})

	Describe("#FindOperation", func() {
		It("fails if the operation does not exist", func() {
			_, err := subject.FindOperation(ctx, logger, repos.FindOperationQuery{OperationID: uuid.NewV4().String()})

			Expect(err).To(MatchError(mds.ErrOperationNotFound))
		})
	})

	Describe("#UpdateOperation", func() {
		It("replaces the stored record", func() {
			operation, err := subject.CreateOperation(ctx, logger, someOperation())
			Expect(err).NotTo(HaveOccurred())

			operation.Title = "Changed"
			operation.IsArchived = true

			err = subject.UpdateOperation(ctx, logger, operation)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindOperation(ctx, logger, repos.FindOperationQuery{OperationID: operation.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(operation))
		})

		It("fails if the operation does not exist", func() {
			operation := someOperation()
			operation.ID = uuid.NewV4().String()

			err := subject.UpdateOperation(ctx, logger, operation)

			Expect(err).To(MatchError(mds.ErrOperationNotFound))
		})
	})

	Describe("#ListOperations", func() {
		It("pages through operations and reports the total", func() {
			for i := 0; i < 3; i++ {
				_, err := subject.CreateOperation(ctx, logger, someOperation())
				Expect(err).NotTo(HaveOccurred())
			}

			page, total, err := subject.ListOperations(ctx, logger, repos.ListOperationsQuery{
				Page: repos.Page{Offset: 1, Amount: 2},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(page).To(HaveLen(2))
		})

		It("orders by start and end when requested", func() {
			base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

			middle := someOperation()
			middle.Start = base.Add(time.Hour)
			middle.End = base.Add(4 * time.Hour)
			middle, err := subject.CreateOperation(ctx, logger, middle)
			Expect(err).NotTo(HaveOccurred())

			earliest := someOperation()
			earliest.Start = base
			earliest.End = base.Add(5 * time.Hour)
			earliest, err = subject.CreateOperation(ctx, logger, earliest)
			Expect(err).NotTo(HaveOccurred())

			latest := someOperation()
			latest.Start = base.Add(2 * time.Hour)
			latest.End = base.Add(3 * time.Hour)
			latest, err = subject.CreateOperation(ctx, logger, latest)
			Expect(err).NotTo(HaveOccurred())

			byStart, _, err := subject.ListOperations(ctx, logger, repos.ListOperationsQuery{
				Order: repos.Ordering{Field: repos.OrderByStart},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(byStart).To(Equal([]mds.Operation{earliest, middle, latest}))

			byEndDesc, _, err := subject.ListOperations(ctx, logger, repos.ListOperationsQuery{
				Order: repos.Ordering{Field: repos.OrderByEnd, Desc: true},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(byEndDesc).To(Equal([]mds.Operation{earliest, middle, latest}))
		})
	})

	Describe("#SetOperationMembers and #ListOperationMembers", func() {
		It("replaces the member list and keeps its order", func() {
			operation, err := subject.CreateOperation(ctx, logger, someOperation())
			Expect(err).NotTo(HaveOccurred())

			first, err := userRepo.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())
			second, err := userRepo.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			err = subject.SetOperationMembers(ctx, logger, operation.ID, []string{second.ID, first.ID})
			Expect(err).NotTo(HaveOccurred())

			members, err := subject.ListOperationMembers(ctx, logger, repos.FindOperationQuery{OperationID: operation.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(Equal([]string{second.ID, first.ID}))

			err = subject.SetOperationMembers(ctx, logger, operation.ID, []string{first.ID})
			Expect(err).NotTo(HaveOccurred())

			members, err = subject.ListOperationMembers(ctx, logger, repos.FindOperationQuery{OperationID: operation.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(Equal([]string{first.ID}))
		})
	})

	Describe("#ListOperationsForMember", func() {
		It("lists only operations the user belongs to", func() {
			member, err := userRepo.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			joined, err := subject.CreateOperation(ctx, logger, someOperation())
			Expect(err).NotTo(HaveOccurred())
			_, err = subject.CreateOperation(ctx, logger, someOperation())
			Expect(err).NotTo(HaveOccurred())

			err = subject.SetOperationMembers(ctx, logger, joined.ID, []string{member.ID})
			Expect(err).NotTo(HaveOccurred())

			operations, total, err := subject.ListOperationsForMember(ctx, logger, repos.ListOperationsForMemberQuery{
				UserID: member.ID,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(operations).To(HaveLen(1))
			Expect(operations[0].ID).To(Equal(joined.ID))
		})
	})

	Describe("#SearchOperations", func() {
		It("matches on title and description", func() {
			needle := uuid.NewV4().String()

			byTitle := someOperation()
			byTitle.Title = "Op " + needle

			byDescription := someOperation()
			byDescription.Description = "About " + needle

			miss := someOperation()

			for _, operation := range []mds.Operation{byTitle, byDescription, miss} {
				_, err := subject.CreateOperation(ctx, logger, operation)
				Expect(err).NotTo(HaveOccurred())
			}

			operations, err := subject.SearchOperations(ctx, logger, repos.SearchOperationsQuery{Query: needle})

			Expect(err).NotTo(HaveOccurred())
			Expect(operations).To(HaveLen(2))
		})
	})
}

func someOperation() mds.Operation {
	suffix := uuid.NewV4().String()
	return mds.Operation{
		Title:       "Operation " + suffix,
		Description: "Description " + suffix,
	}
}
