// Package client implements the interactive player: it sends each typed line
// to the server and prints the reply.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"
	"unicode/utf8"

	"github.com/jbarratt/oddeven/config"
	"github.com/jbarratt/oddeven/transport"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Client is a connected UDP player
type Client struct {
	serverAddr string
	conn       *net.UDPConn
	in         io.Reader
	out        io.Writer
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddress sets the server to talk to.
func WithServerAddress(addr string) Cfg {
	return func(c *Client) error {
		c.serverAddr = addr
		return nil
	}
}

// WithIO sets where lines are read from and replies are written to.
func WithIO(in io.Reader, out io.Writer) Cfg {
	return func(c *Client) error {
		c.in = in
		c.out = out
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	c := &Client{serverAddr: config.DefaultAddress}
	for _, cfg := range cfgs {
		if err := cfg(c); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if c.in == nil || c.out == nil {
		return nil, errors.New("client needs an input and an output")
	}
	return c, nil
}

// Connect binds a local socket and fixes the server as its peer.
func (c *Client) Connect() error {
	raddr, err := net.ResolveUDPAddr("udp", c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "resolve %s failed", c.serverAddr)
	}
	c.conn, err = net.DialUDP("udp", nil, raddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	return nil
}

// Close releases the socket.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Run sends lines until the input ends or ctx is done. Transport errors end the run.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return errors.New("client is not connected")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	lines := readLines(ctx, c.in)
	buf := make([]byte, transport.MaxDatagramSize)
	for {
		fmt.Fprintln(c.out, "Type the input:")
		var in inputLine
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case in, ok = <-lines:
		}
		if !ok || (in.text == "" && in.err == io.EOF) {
			return nil
		}
		if in.err != nil && in.err != io.EOF {
			return errors.Wrap(in.err, "read input failed")
		}

		if _, err := c.conn.Write([]byte(in.text)); err != nil {
			return errors.Wrap(err, "send failed")
		}

		n, err := c.conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "receive failed")
		}
		if !utf8.Valid(buf[:n]) {
			logger.WithField("len", n).Error("Error parsing: reply is not valid utf-8")
			continue
		}
		fmt.Fprintf(c.out, "Server response: %s\n", buf[:n])
	}
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds lines from in until it fails or ctx is done.
// The channel is closed after the last line.
func readLines(ctx context.Context, in io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		r := bufio.NewReader(in)
		for {
			text, err := r.ReadString('\n')
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}
