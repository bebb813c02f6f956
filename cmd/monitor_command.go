package cmd

import (
	"context"
	"time"

	"github.com/mobile-directing-system/mds-store/cmd/flags"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/metrics/statsdx"
	"github.com/mobile-directing-system/mds-store/monitor"
	"github.com/mobile-directing-system/mds-store/monitor/recording"
	"github.com/mobile-directing-system/mds-store/monitor/stats"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/repos/db"
	"github.com/mobile-directing-system/mds-store/store"
)

// MonitorCommand runs a periodic probe against the store and ships the
// observed call durations to StatsD. The probe account needs user.view,
// operation.view.any and group.view grants.
type MonitorCommand struct {
	Logger flags.LagerFlag

	DB     flags.DBFlag     `group:"DB" namespace:"db"`
	StatsD flags.StatsDFlag `group:"StatsD" namespace:"statsd"`

	Username string `long:"username" description:"Username of the probe account" required:"true"`
	Password string `long:"password" description:"Password of the probe account" required:"true"`

	Frequency     time.Duration `long:"frequency" description:"Frequency with which the probe is issued" default:"5s"`
	EmitFrequency time.Duration `long:"emit-frequency" description:"Frequency with which collected statistics are shipped" default:"10s"`
	MaxDuration   time.Duration `long:"max-duration" description:"Longest call duration the histogram can record" default:"100ms"`
}

func (cmd MonitorCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("mds-store").WithName("monitor")
	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	statsDClient, err := cmd.StatsD.Connect()
	if err != nil {
		logger.Error(failedToConnectToStatsD, err)
		return err
	}
	defer statsDClient.Close()

	histogram := stats.NewHistogram(stats.HistogramOptions{
		Name:        "store.duration",
		Buckets:     []float64{50, 90, 99, 99.9},
		MaxDuration: cmd.MaxDuration,
	})

	dataService := db.NewDataService(conn)
	probed := recording.NewStore(
		store.NewStore(dataService, dataService, dataService, dataService),
		histogram,
	)

	emitter := monitor.NewEmitter(statsdx.NewStatter(logger.WithName("metrics"), statsDClient), histogram)
	go emitter.Run(ctx, cmd.EmitFrequency)

	ticker := time.NewTicker(cmd.Frequency)
	defer ticker.Stop()

	probeLogger := logger.WithName("probe")
	for range ticker.C {
		if err := cmd.probe(ctx, probeLogger, probed); err != nil {
			probeLogger.Error(probeRunFailed, err)
		}
	}

	return nil
}

func (cmd MonitorCommand) probe(ctx context.Context, logger logx.Logger, s *recording.Store) error {
	ok, err := s.Login(ctx, logger, cmd.Username, cmd.Password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProbeLoginFailed
	}
	defer s.Logout(ctx, logger)

	if _, _, err := s.GetUsers(ctx, logger, repos.ListUsersQuery{}); err != nil {
		return err
	}
	if _, _, err := s.GetOperations(ctx, logger, repos.ListOperationsQuery{}); err != nil {
		return err
	}
	_, _, err = s.GetGroups(ctx, logger, repos.ListGroupsQuery{})
	return err
}
