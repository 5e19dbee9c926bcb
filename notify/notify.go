// Package notify delivers round outcomes: replies to players and reports to spectators.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jbarratt/oddeven/game"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Notifier sends a body to a destination
type Notifier[A any] interface {
	Send(destination A, body []byte) error
}

// PlayerReport is one side of a finished round
type PlayerReport struct {
	Address string          `json:"address" copier:"-"`
	Play    game.HandPlayed `json:"play"`
	Value   uint8           `json:"value"`
	Parity  string          `json:"parity" copier:"-"`
}

// RoundReport is a finished round, detached from the game it came from
type RoundReport struct {
	RoundID uuid.UUID    `json:"roundId"`
	Winner  PlayerReport `json:"winner"`
	Loser   PlayerReport `json:"loser"`
	Sum     int          `json:"sum"`
}

// NewRoundReport copies the players out of a result so the report outlives the round
func NewRoundReport[A comparable](id uuid.UUID, result game.RoundResult[A]) (RoundReport, error) {
	report := RoundReport{RoundID: id, Sum: result.Sum()}
	if err := copyPlayer(&report.Winner, result.Winner); err != nil {
		return RoundReport{}, errors.Wrap(err, "copy winner failed")
	}
	if err := copyPlayer(&report.Loser, result.Loser); err != nil {
		return RoundReport{}, errors.Wrap(err, "copy loser failed")
	}
	return report, nil
}

func copyPlayer[A comparable](dst *PlayerReport, p *game.Player[A]) error {
	if err := copier.Copy(dst, p); err != nil {
		return err
	}
	dst.Address = fmt.Sprint(p.Address())
	dst.Parity = string(dst.Play.Parity())
	return nil
}

// Spectators fans round reports out to a fixed set of connections
type Spectators struct {
	n           Notifier[string]
	connections []string
}

// NewSpectators returns a feed that posts to every connection through n
func NewSpectators(n Notifier[string], connections ...string) *Spectators {
	return &Spectators{n: n, connections: connections}
}

// Announce sends the report to every spectator. Failed sends are logged and skipped.
// It returns how many spectators received it.
func (s *Spectators) Announce(report RoundReport) (int, error) {
	b, err := json.Marshal(report)
	if err != nil {
		return 0, errors.Wrap(err, "marshal round report failed")
	}
	sent := 0
	for _, conn := range s.connections {
		if err := s.n.Send(conn, b); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"connection": conn,
				"round":      report.RoundID.String(),
			}).Warn("spectator notification failed")
			continue
		}
		sent++
	}
	return sent, nil
}
