package store_test

import (
	"context"

	"code.cloudfoundry.org/lager/lagertest"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
	"github.com/mobile-directing-system/mds-store/repos/inmemory"
	"github.com/mobile-directing-system/mds-store/store"
	. "github.com/onsi/gomega"
	uuid "github.com/satori/go.uuid"
)

func testLogger() logx.Logger {
	return lagerx.NewLogger(lagertest.NewTestLogger("mds-test"))
}

func newTestStore() (*inmemory.Store, *store.Store) {
	repo := inmemory.NewStore()
	subject := store.NewStore(repo, repo, repo, repo)
	return repo, subject
}

// seedUser writes directly through the repo so tests can arrange accounts
// without a privileged session.
func seedUser(ctx context.Context, logger logx.Logger, repo *inmemory.Store, username string, isAdmin bool) mds.User {
	user, err := repo.CreateUser(ctx, logger, mds.User{
		Username:  username,
		FirstName: "First " + username,
		LastName:  "Last " + username,
		IsActive:  true,
		IsAdmin:   isAdmin,
		Pass:      "pw-" + username,
	})
	Expect(err).NotTo(HaveOccurred())
	return user
}

func grant(ctx context.Context, logger logx.Logger, repo *inmemory.Store, userID string, names ...mds.PermissionName) {
	permissions := make([]mds.Permission, 0, len(names))
	for _, name := range names {
		permissions = append(permissions, mds.Permission{Name: name})
	}
	Expect(repo.SetUserPermissions(ctx, logger, userID, permissions)).To(Succeed())
}

func login(ctx context.Context, logger logx.Logger, subject *store.Store, user mds.User) {
	ok, err := subject.Login(ctx, logger, user.Username, "pw-"+user.Username)
	Expect(err).NotTo(HaveOccurred())
	Expect(ok).To(BeTrue())
}

func randomID() string {
	return uuid.NewV4().String()
}
