// Package reposbehaviors holds shared ginkgo behaviors that every repos
// implementation must satisfy.
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

func BehavesLikeAUserRepo(subjectCreator func() repos.UserRepo) {
	var (
		subject repos.UserRepo

		ctx        context.Context
		cancelFunc context.CancelFunc
		logger     logx.Logger
	)

	BeforeEach(func() {
		subject = subjectCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#CreateUser", func() {
		It("saves the user and assigns an id", func() {
			user, err := subject.CreateUser(ctx, logger, someUser())

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())

			found, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(user))
		})

		It("fails if the username is already taken", func() {
			user := someUser()

			_, err := subject.CreateUser(ctx, logger, user)
			Expect(err).NotTo(HaveOccurred())

			user.FirstName = "Other"
			_, err = subject.CreateUser(ctx, logger, user)
			Expect(err).To(MatchError(mds.ErrUserAlreadyExists))
		})
	})

	Describe("#FindUser", func() {
		It("fails if the user does not exist", func() {
			_, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: uuid.NewV4().String()})

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("#FindUserByUsername", func() {
		It("finds the user with the exact username", func() {
			user, err := subject.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindUserByUsername(ctx, logger, repos.FindUserByUsernameQuery{Username: user.Username})

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(user))
		})

		It("fails if no user has the username", func() {
			_, err := subject.FindUserByUsername(ctx, logger, repos.FindUserByUsernameQuery{Username: uuid.NewV4().String()})

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("#UserExists", func() {
		It("reports whether the user is stored", func() {
			user, err := subject.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			exists, err := subject.UserExists(ctx, logger, repos.FindUserQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = subject.UserExists(ctx, logger, repos.FindUserQuery{UserID: uuid.NewV4().String()})
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("#UpdateUser", func() {
		It("replaces the stored record", func() {
			user, err := subject.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			user.FirstName = "Changed"
			user.IsActive = false

			err = subject.UpdateUser(ctx, logger, user)
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(user))
		})

		It("fails if the user does not exist", func() {
			user := someUser()
			user.ID = uuid.NewV4().String()

			err := subject.UpdateUser(ctx, logger, user)

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("#SetUserPassword", func() {
		It("replaces only the password", func() {
			user, err := subject.CreateUser(ctx, logger, someUser())
			Expect(err).NotTo(HaveOccurred())

			err = subject.SetUserPassword(ctx, logger, user.ID, "changed-pass")
			Expect(err).NotTo(HaveOccurred())

			found, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Pass).To(Equal("changed-pass"))
			Expect(found.Username).To(Equal(user.Username))
		})

		It("fails if the user does not exist", func() {
			err := subject.SetUserPassword(ctx, logger, uuid.NewV4().String(), "changed-pass")

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("#ListUsers", func() {
		It("pages through users with a stable order and reports the total", func() {
			for i := 0; i < 3; i++ {
				_, err := subject.CreateUser(ctx, logger, someUser())
				Expect(err).NotTo(HaveOccurred())
			}

			firstPage, total, err := subject.ListUsers(ctx, logger, repos.ListUsersQuery{
				Page: repos.Page{Offset: 0, Amount: 2},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(firstPage).To(HaveLen(2))

			secondPage, total, err := subject.ListUsers(ctx, logger, repos.ListUsersQuery{
				Page: repos.Page{Offset: 2, Amount: 2},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(secondPage).To(HaveLen(1))

			Expect(firstPage).NotTo(ContainElement(secondPage[0]))
		})

		It("returns identical ordered results when the same page is requested twice", func() {
			for i := 0; i < 3; i++ {
				_, err := subject.CreateUser(ctx, logger, someUser())
				Expect(err).NotTo(HaveOccurred())
			}

			query := repos.ListUsersQuery{
				Page:  repos.Page{Offset: 1, Amount: 2},
				Order: repos.Ordering{Field: repos.OrderByUsername},
			}

			page, _, err := subject.ListUsers(ctx, logger, query)
			Expect(err).NotTo(HaveOccurred())

			repeated, _, err := subject.ListUsers(ctx, logger, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(repeated).To(Equal(page))
		})

		It("sorts by the requested field", func() {
			a := someUser()
			a.Username = "aaa-" + a.Username
			b := someUser()
			b.Username = "zzz-" + b.Username

			_, err := subject.CreateUser(ctx, logger, b)
			Expect(err).NotTo(HaveOccurred())
			_, err = subject.CreateUser(ctx, logger, a)
			Expect(err).NotTo(HaveOccurred())

			users, _, err := subject.ListUsers(ctx, logger, repos.ListUsersQuery{
				Order: repos.Ordering{Field: repos.OrderByUsername},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(users[0].Username).To(Equal(a.Username))

			users, _, err = subject.ListUsers(ctx, logger, repos.ListUsersQuery{
				Order: repos.Ordering{Field: repos.OrderByUsername, Desc: true},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(users[0].Username).To(Equal(b.Username))
		})
	})

	Describe("#SearchUsers", func() {
		It("matches on username, first name and last name", func() {
			needle := uuid.NewV4().String()

			byUsername := someUser()
			byUsername.Username = "user-" + needle

			byFirstName := someUser()
			byFirstName.FirstName = "First " + needle

			miss := someUser()

			for _, user := range []mds.User{byUsername, byFirstName, miss} {
				_, err := subject.CreateUser(ctx, logger, user)
				Expect(err).NotTo(HaveOccurred())
			}

			users, err := subject.SearchUsers(ctx, logger, repos.SearchUsersQuery{Query: needle})

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})

		It("honors limit and offset", func() {
			needle := uuid.NewV4().String()
			for i := 0; i < 3; i++ {
				user := someUser()
				user.FirstName = "First " + needle
				_, err := subject.CreateUser(ctx, logger, user)
				Expect(err).NotTo(HaveOccurred())
			}

			users, err := subject.SearchUsers(ctx, logger, repos.SearchUsersQuery{Query: needle, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))

			users, err = subject.SearchUsers(ctx, logger, repos.SearchUsersQuery{Query: needle, Offset: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
		})
	})
}

func someUser() mds.User {
	suffix := uuid.NewV4().String()
	return mds.User{
		Username:  "user-" + suffix,
		FirstName: "First " + suffix,
		LastName:  "Last " + suffix,
		IsActive:  true,
		Pass:      "pass-" + suffix,
	}
}
