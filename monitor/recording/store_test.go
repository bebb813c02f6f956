package recording_test

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/lagertest"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
	. "github.com/mobile-directing-system/mds-store/monitor/recording"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/repos/inmemory"
	"github.com/mobile-directing-system/mds-store/store"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recorderStub struct {
	observed []time.Duration
	err      error
}

func (r *recorderStub) Observe(duration time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.observed = append(r.observed, duration)
	return nil
}

var _ = Describe("Store", func() {
	var (
		repo     *inmemory.Store
		recorder *recorderStub
		clk      *fakeclock.FakeClock

		subject *Store

		ctx    context.Context
		logger logx.Logger

		admin mds.User
	)

	BeforeEach(func() {
		repo = inmemory.NewStore()
		recorder = &recorderStub{}
		clk = fakeclock.NewFakeClock(time.Now())

		subject = NewStore(store.NewStore(repo, repo, repo, repo), recorder, WithClock(clk))

		ctx = context.Background()
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-recording"))

		var err error
		admin, err = repo.CreateUser(ctx, logger, mds.User{
			Username:  "admin",
			FirstName: "Ada",
			LastName:  "Root",
			IsActive:  true,
			IsAdmin:   true,
			Pass:      "pw",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	login := func() {
		ok, err := subject.Login(ctx, logger, admin.Username, "pw")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	}

	It("records the duration of a successful call", func() {
		login()

		Expect(recorder.observed).To(HaveLen(1))

		recorder.observed = nil
		_, _, err := subject.GetUsers(ctx, logger, repos.ListUsersQuery{})
		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.observed).To(HaveLen(1))
	})

	It("does not record the duration of a failed call", func() {
		login()
		recorder.observed = nil

		_, err := subject.GetUser(ctx, logger, "unknown-id")
		Expect(err).To(MatchError(mds.ErrUserNotFound))

		Expect(recorder.observed).To(BeEmpty())
	})

	It("wraps recorder failures in FailedToObserveDurationError", func() {
		observeErr := errors.New("observe error")
		recorder.err = observeErr

		_, err := subject.Login(ctx, logger, admin.Username, "pw")

		Expect(err).To(MatchError(FailedToObserveDurationError{Err: observeErr}))
	})

	It("delegates Logout and LoggedInUser without recording", func() {
		login()
		recorder.observed = nil

		userID, ok := subject.LoggedInUser()
		Expect(ok).To(BeTrue())
		Expect(userID).To(Equal(admin.ID))

		subject.Logout(ctx, logger)

		_, ok = subject.LoggedInUser()
		Expect(ok).To(BeFalse())
		Expect(recorder.observed).To(BeEmpty())
	})
})
