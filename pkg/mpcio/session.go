package mpcio

import (
	"fmt"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/logging"
)

// Session binds one party to a live computation group: its rank, the group
// size, the shared runtime configuration and the already-open link to every
// peer.
type Session struct {
	rank      RoleID
	worldSize int
	conf      RuntimeConfig
	transport Transport
	logger    logging.Logger
}

// NewSession validates and binds the per-party session state. A nil logger
// binds slog.Default via the logging package.
func NewSession(rank RoleID, worldSize int, conf RuntimeConfig, t Transport, logger logging.Logger) (*Session, error) {
	if worldSize < 2 {
		return nil, fmt.Errorf("%w: world size %d, need at least 2", ErrConfiguration, worldSize)
	}
	if int(rank) >= worldSize {
		return nil, fmt.Errorf("%w: rank %d outside world of %d", ErrConfiguration, rank, worldSize)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transport must not be nil", ErrConfiguration)
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Session{
		rank:      rank,
		worldSize: worldSize,
		conf:      conf,
		transport: t,
		logger:    logger.With("rank", uint32(rank)),
	}, nil
}

// Rank returns this party's rank.
func (s *Session) Rank() RoleID { return s.rank }

// WorldSize returns the number of parties in the group.
func (s *Session) WorldSize() int { return s.worldSize }

// Config returns the session's runtime configuration.
func (s *Session) Config() RuntimeConfig { return s.conf }

// Peers returns the ranks of every other party in ascending order.
func (s *Session) Peers() []RoleID {
	peers := make([]RoleID, 0, s.worldSize-1)
	for r := 0; r < s.worldSize; r++ {
		if RoleID(r) != s.rank {
			peers = append(peers, RoleID(r))
		}
	}
	return peers
}
