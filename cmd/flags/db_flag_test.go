package flags_test

import (
	"context"

	"code.cloudfoundry.org/lager/lagertest"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/mobile-directing-system/mds-store/cmd/flags"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
)

var _ = Describe("DBFlag", func() {
	var (
		ctx    context.Context
		logger logx.Logger

		flag *flags.DBFlag
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = lagerx.NewLogger(lagertest.NewTestLogger("flags"))

		flag = &flags.DBFlag{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     1234,
			Schema:   "mds",
			Username: "mds-user",
			Password: "mds-password",
		}
	})

	It("requires a host", func() {
		flag.Host = ""

		_, err := flag.Connect(ctx, logger)
		Expect(err).To(MatchError("the required host parameter was not specified; see --help"))
	})

	It("requires a port", func() {
		flag.Port = 0

		_, err := flag.Connect(ctx, logger)
		Expect(err).To(MatchError("the required port parameter was not specified; see --help"))
	})

	It("requires a schema", func() {
		flag.Schema = ""

		_, err := flag.Connect(ctx, logger)
		Expect(err).To(MatchError("the required schema parameter was not specified; see --help"))
	})

	It("requires a username", func() {
		flag.Username = ""

		_, err := flag.Connect(ctx, logger)
		Expect(err).To(MatchError("the required username parameter was not specified; see --help"))
	})
})
