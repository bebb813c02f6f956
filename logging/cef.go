package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/mobile-directing-system/mds-store/contextx"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/xoebus/ceflog"
)

type Vendor string
type Product string
type Version string
type Hostname string

// CEFLogger writes security events in the ArcSight Common Event Format, one
// line per event.
type CEFLogger struct {
	logger   *ceflog.Logger
	hostname string
	destPort int
}

const CEFTimeFormat = "Jan 2 2006 15:04:05"

func NewCEFLogger(writer io.Writer, vendor Vendor, product Product, version Version, hostname Hostname, destPort int) *CEFLogger {
	return &CEFLogger{
		logger:   ceflog.New(writer, string(vendor), string(product), string(version)),
		hostname: string(hostname),
		destPort: destPort,
	}
}

func (l *CEFLogger) Log(ctx context.Context, signature string, name string, args ...logx.SecurityData) {
	var srcAddr net.IP
	var srcPort int
	if addr, ok := contextx.RemoteAddrFromContext(ctx); ok {
		switch a := addr.(type) {
		case *net.TCPAddr:
			srcAddr = a.IP
			srcPort = a.Port
		default:
		}
	}

	extension := ceflog.Extension{
		ceflog.Pair{Key: "dst", Value: l.hostname},
		ceflog.Pair{Key: "src", Value: srcAddr.String()},
		ceflog.Pair{Key: "dpt", Value: strconv.FormatInt(int64(l.destPort), 10)},
		ceflog.Pair{Key: "spt", Value: strconv.FormatInt(int64(srcPort), 10)},
	}
	if rt, ok := contextx.ReceiptTimeFromContext(ctx); ok {
		extension = append(extension, ceflog.Pair{Key: "rt", Value: fmt.Sprintf("%q", rt.Format(CEFTimeFormat))})
	}

	// CEF allows at most six custom string extensions (cs1..cs6).
	counter := 1
	invalidFound := false
	var msgBuffer bytes.Buffer
	for _, ce := range args {
		if (ce.Key == "" || ce.Value == "") && !invalidFound {
			msgBuffer.WriteString("ERROR:invalid-custom-extension;")
			invalidFound = true
		} else {
			extension = append(extension, ceflog.Pair{Key: fmt.Sprintf("cs%dLabel", counter), Value: ce.Key})
			extension = append(extension, ceflog.Pair{Key: fmt.Sprintf("cs%d", counter), Value: ce.Value})
			counter++
			if counter > 6 {
				msgBuffer.WriteString("ERROR:too-many-custom-extensions;")
				break
			}
		}
	}
	if msgBuffer.String() != "" {
		extension = append(extension, ceflog.Pair{Key: "msg", Value: msgBuffer.String()})
	}

	l.logger.LogEvent(signature, name, 0, extension)
}
