package flags

import (
	"net"
	"strconv"

	"github.com/cactus/go-statsd-client/statsd"
)

// StatsDFlag groups the connection parameters of the StatsD backend.
type StatsDFlag struct {
	Hostname string `long:"hostname" description:"Hostname used to connect to StatsD server" required:"true"`
	Port     int    `long:"port" description:"Port used to connect to StatsD server" required:"true"`
}

func (o StatsDFlag) Connect() (statsd.Statter, error) {
	addr := net.JoinHostPort(o.Hostname, strconv.Itoa(o.Port))
	return statsd.NewBufferedClient(addr, "", 0, 0)
}
