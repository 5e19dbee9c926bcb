// Package transport carries datagrams between players and the server.
package transport

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/pkg/errors"
)

// MaxDatagramSize is the largest payload read in one receive
const MaxDatagramSize = 1024

// UDP is a bound datagram socket addressed by netip.AddrPort
type UDP struct {
	conn *net.UDPConn
	buf  []byte
}

// ListenUDP binds a socket on addr, e.g. "127.0.0.1:34254"
func ListenUDP(addr string) (*UDP, error) {
	ap, err := netip.ParseAddrPort(addr)
	if err != nil {
		resolved, rerr := net.ResolveUDPAddr("udp", addr)
		if rerr != nil {
			return nil, errors.Wrapf(rerr, "resolve %s failed", addr)
		}
		ap = resolved.AddrPort()
	}
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(ap))
	if err != nil {
		return nil, errors.Wrapf(err, "bind %s failed", addr)
	}
	return &UDP{conn: conn, buf: make([]byte, MaxDatagramSize)}, nil
}

// LocalAddr returns the bound address
func (u *UDP) LocalAddr() netip.AddrPort {
	return unmap(u.conn.LocalAddr().(*net.UDPAddr).AddrPort())
}

// Receive blocks for the next datagram. It returns ctx.Err() once ctx is done.
// The payload is a copy and stays valid after the next call.
func (u *UDP) Receive(ctx context.Context) ([]byte, netip.AddrPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, netip.AddrPort{}, err
	}
	if err := u.conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, netip.AddrPort{}, errors.Wrap(err, "clear read deadline failed")
	}
	stop := context.AfterFunc(ctx, func() {
		_ = u.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	n, from, err := u.conn.ReadFromUDPAddrPort(u.buf)
	if err != nil {
		if ctx.Err() != nil {
			return nil, netip.AddrPort{}, ctx.Err()
		}
		return nil, netip.AddrPort{}, errors.Wrap(err, "read datagram failed")
	}
	payload := make([]byte, n)
	copy(payload, u.buf[:n])
	return payload, unmap(from), nil
}

// Send writes body as one datagram to destination
func (u *UDP) Send(destination netip.AddrPort, body []byte) error {
	if _, err := u.conn.WriteToUDPAddrPort(body, destination); err != nil {
		return errors.Wrapf(err, "send to %s failed", destination)
	}
	return nil
}

// Close releases the socket
func (u *UDP) Close() error {
	return u.conn.Close()
}

// unmap keeps IPv4 peers comparable however the socket reports them
func unmap(ap netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
