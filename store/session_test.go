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

var _ = Describe("Session", func() {
	var (
		repo    *inmemory.Store
		subject *store.Store

		ctx    context.Context
		logger logx.Logger

		user mds.User
	)

	BeforeEach(func() {
		repo, subject = newTestStore()
		ctx = context.Background()
		logger = testLogger()

		user = seedUser(ctx, logger, repo, "alice", false)
	})

	Describe("#Login", func() {
		It("matches credentials and makes the user the principal", func() {
			ok, err := subject.Login(ctx, logger, "alice", "pw-alice")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			userID, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeTrue())
			Expect(userID).To(Equal(user.ID))
		})

		It("reports false for an unknown username without failing", func() {
			ok, err := subject.Login(ctx, logger, "nobody", "pw")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			_, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeFalse())
		})

		It("reports false for a wrong password and leaves the session alone", func() {
			ok, err := subject.Login(ctx, logger, "alice", "wrong")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			_, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeFalse())
		})

		It("keeps the previous principal when a later attempt fails", func() {
			ok, err := subject.Login(ctx, logger, "alice", "pw-alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = subject.Login(ctx, logger, "alice", "wrong")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			userID, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeTrue())
			Expect(userID).To(Equal(user.ID))
		})

		It("switches the principal when a second login succeeds", func() {
			bob := seedUser(ctx, logger, repo, "bob", false)

			login(ctx, logger, subject, user)
			login(ctx, logger, subject, bob)

			userID, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeTrue())
			Expect(userID).To(Equal(bob.ID))
		})
	})

	Describe("#Logout", func() {
		It("clears the principal", func() {
			login(ctx, logger, subject, user)

			subject.Logout(ctx, logger)

			userID, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeFalse())
			Expect(userID).To(BeEmpty())
		})

		It("is a no-op without a session", func() {
			subject.Logout(ctx, logger)

			_, loggedIn := subject.LoggedInUser()
			Expect(loggedIn).To(BeFalse())
		})
	})
})
