// Package service runs the odd or even server loop over a datagram transport.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jbarratt/oddeven/codec"
	"github.com/jbarratt/oddeven/game"
	"github.com/jbarratt/oddeven/log"
	"github.com/jbarratt/oddeven/notify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Transport receives datagrams with their sender and replies to addresses
type Transport[A comparable] interface {
	Receive(ctx context.Context) ([]byte, A, error)
	notify.Notifier[A]
}

// Announcer publishes finished rounds to whoever watches them
type Announcer interface {
	Announce(report notify.RoundReport) (int, error)
}

// Server owns the single round and drives it from incoming datagrams
type Server[A comparable] struct {
	transport Transport[A]
	game      *game.Game[A]
	announcer Announcer
	roundID   func() uuid.UUID
}

// Cfg configures a Server.
type Cfg[A comparable] func(*Server[A]) error

// WithAnnouncer publishes every finished round through a.
func WithAnnouncer[A comparable](a Announcer) Cfg[A] {
	return func(s *Server[A]) error {
		s.announcer = a
		return nil
	}
}

// WithRoundIDs sets how finished rounds are named.
func WithRoundIDs[A comparable](next func() uuid.UUID) Cfg[A] {
	return func(s *Server[A]) error {
		if next == nil {
			return errors.New("round id generator is nil")
		}
		s.roundID = next
		return nil
	}
}

// NewServer returns a server with an empty round reading from t
func NewServer[A comparable](t Transport[A], cfgs ...Cfg[A]) (*Server[A], error) {
	if t == nil {
		return nil, errors.New("transport is nil")
	}
	s := &Server[A]{
		transport: t,
		game:      game.NewGame[A](),
		roundID:   uuid.New,
	}
	for _, cfg := range cfgs {
		if err := cfg(s); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	return s, nil
}

// Run handles datagrams one at a time until ctx is done or the transport fails.
func (s *Server[A]) Run(ctx context.Context) error {
	logger.Info(Banner)
	for {
		payload, from, err := s.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("server stopped")
				return nil
			}
			return errors.Wrap(err, "receive failed")
		}
		if err := s.Handle(payload, from); err != nil {
			return errors.Wrap(err, "handle datagram failed")
		}
	}
}

// Handle applies one datagram to the round.
// Decode and play errors are sent back to the sender; only transport errors are returned.
func (s *Server[A]) Handle(payload []byte, from A) error {
	logger.WithFields(log.DatagramFields(from, payload)).Debug("data received")

	play, err := codec.Decode(payload)
	if err != nil {
		return s.reply(from, err)
	}

	if err := s.game.AddPlay(play, from); err != nil {
		return s.reply(from, err)
	}
	logger.WithFields(logrus.Fields{"from": from, "play": play.String()}).Debug("play registered")

	if !s.game.CanGuess() {
		return nil
	}

	result, err := s.game.GuessWinner()
	if err != nil {
		// CanGuess was true, so this means the round state is inconsistent.
		// The round is left as is.
		logger.WithError(err).Error("round is full but has no winner")
		return nil
	}

	if err := s.transport.Send(result.Winner.Address(), []byte(WinMessage)); err != nil {
		return errors.Wrap(err, "notify winner failed")
	}
	if err := s.transport.Send(result.Loser.Address(), []byte(LoseMessage)); err != nil {
		return errors.Wrap(err, "notify loser failed")
	}

	id := s.roundID()
	s.announce(id, result)

	s.game.Reset()
	logger.WithFields(log.PlayerFields("winner", result.Winner.Address(), result.Winner.Play().String())).
		WithFields(log.PlayerFields("loser", result.Loser.Address(), result.Loser.Play().String())).
		WithField("round", id.String()).
		Info("Game refresh!")
	return nil
}

func (s *Server[A]) reply(to A, cause error) error {
	logger.WithError(cause).WithField("to", to).Debug("rejecting datagram")
	if err := s.transport.Send(to, []byte(cause.Error())); err != nil {
		return errors.Wrap(err, "reply failed")
	}
	return nil
}

func (s *Server[A]) announce(id uuid.UUID, result game.RoundResult[A]) {
	if s.announcer == nil {
		return
	}
	report, err := notify.NewRoundReport(id, result)
	if err != nil {
		logger.WithError(err).Warn("build round report failed")
		return
	}
	sent, err := s.announcer.Announce(report)
	if err != nil {
		logger.WithError(err).Warn("announce round failed")
		return
	}
	logger.WithFields(logrus.Fields{"round": id.String(), "spectators": sent}).Debug("round announced")
}
