package notify

import (
	"encoding/json"
	"net/netip"
	"testing"

	"github.com/google/uuid"
	"github.com/jbarratt/oddeven/game"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(destination string, body []byte) error {
	args := m.Called(destination, body)
	return args.Error(0)
}

func finishedRound(t *testing.T) (*game.Game[netip.AddrPort], game.RoundResult[netip.AddrPort]) {
	t.Helper()
	g := game.NewGame[netip.AddrPort]()
	odd, err := game.New(game.PLAY_OPTION_ODD, 2)
	require.NoError(t, err)
	even, err := game.New(game.PLAY_OPTION_EVEN, 3)
	require.NoError(t, err)
	require.NoError(t, g.AddPlay(odd, netip.MustParseAddrPort("127.0.0.1:888")))
	require.NoError(t, g.AddPlay(even, netip.MustParseAddrPort("127.0.0.1:881")))
	result, err := g.GuessWinner()
	require.NoError(t, err)
	return g, result
}

func TestNewRoundReport(t *testing.T) {
	g, result := finishedRound(t)
	id := uuid.New()

	report, err := NewRoundReport(id, result)
	require.NoError(t, err)
	require.Equal(t, id, report.RoundID)
	require.Equal(t, 5, report.Sum)
	require.Equal(t, "127.0.0.1:888", report.Winner.Address)
	require.Equal(t, "Odd", report.Winner.Parity)
	require.Equal(t, uint8(2), report.Winner.Value)
	require.Equal(t, "Odd(2)", report.Winner.Play.String())
	require.Equal(t, "127.0.0.1:881", report.Loser.Address)
	require.Equal(t, "Even", report.Loser.Parity)
	require.Equal(t, uint8(3), report.Loser.Value)

	// the report does not depend on the round once it is reset
	g.Reset()
	require.Equal(t, "127.0.0.1:888", report.Winner.Address)
}

func TestSpectatorsAnnounce(t *testing.T) {
	_, result := finishedRound(t)
	report, err := NewRoundReport(uuid.New(), result)
	require.NoError(t, err)

	n := &mockNotifier{}
	n.On("Send", "conn-a", mock.Anything).Return(nil).Once()
	n.On("Send", "conn-b", mock.Anything).Return(errors.New("gone")).Once()
	n.On("Send", "conn-c", mock.Anything).Return(nil).Once()

	sent, err := NewSpectators(n, "conn-a", "conn-b", "conn-c").Announce(report)
	require.NoError(t, err)
	require.Equal(t, 2, sent)
	n.AssertExpectations(t)

	body := n.Calls[0].Arguments.Get(1).([]byte)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, report.RoundID.String(), decoded["roundId"])
	require.Equal(t, float64(5), decoded["sum"])
	winner := decoded["winner"].(map[string]interface{})
	require.Equal(t, "127.0.0.1:888", winner["address"])
	require.Equal(t, "Odd", winner["parity"])
	require.Equal(t, float64(2), winner["value"])
	require.Equal(t, "Odd(2)", winner["play"])
	loser := decoded["loser"].(map[string]interface{})
	require.Equal(t, "127.0.0.1:881", loser["address"])
	require.Equal(t, "Even(3)", loser["play"])
	require.Equal(t, float64(3), loser["value"])
}

func TestSpectatorsWithoutConnections(t *testing.T) {
	_, result := finishedRound(t)
	report, err := NewRoundReport(uuid.New(), result)
	require.NoError(t, err)

	n := &mockNotifier{}
	sent, err := NewSpectators(n).Announce(report)
	require.NoError(t, err)
	require.Zero(t, sent)
	n.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
