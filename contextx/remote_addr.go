package contextx

import (
	"context"
	"net"
)

type remoteAddrKey struct{}

// WithRemoteAddr annotates ctx with the address of whatever frontend issued
// the call. The store never reads it; the security logger does.
func WithRemoteAddr(parent context.Context, addr net.Addr) context.Context {
	return context.WithValue(parent, remoteAddrKey{}, addr)
}

func RemoteAddrFromContext(ctx context.Context) (net.Addr, bool) {
	addr, ok := ctx.Value(remoteAddrKey{}).(net.Addr)
	return addr, ok
}
