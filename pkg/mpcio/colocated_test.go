package mpcio_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/logging"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/mocknet"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/simulate"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/tensor"
)

// newLoopbackFabric wires two ColocatedIo instances over a mocknet without
// running any round, for tests that only exercise local validation.
func newLoopbackFabric(t *testing.T, conf mpcio.RuntimeConfig) []*mpcio.ColocatedIo {
	t.Helper()
	net := mocknet.New(2)
	ios := make([]*mpcio.ColocatedIo, 2)
	for r := range ios {
		sess, err := mpcio.NewSession(mpcio.RoleID(r), 2, conf, net.Endpoint(mpcio.RoleID(r)), logging.Discard())
		require.NoError(t, err)
		ios[r], err = mpcio.NewColocatedIo(sess)
		require.NoError(t, err)
	}
	return ios
}

type colocatedCase struct {
	worldSize int
	protocol  protocol.Kind
	field     ring.Field
	vis       mpcio.Visibility
}

func colocatedCases() []colocatedCase {
	worldSizes := map[protocol.Kind][]int{
		protocol.Ref2K:  {2},
		protocol.Semi2K: {2, 3, 4},
		protocol.Repl3:  {3},
	}
	var cases []colocatedCase
	for _, kind := range protocol.Kinds() {
		for _, n := range worldSizes[kind] {
			for _, field := range []ring.Field{ring.FM32, ring.FM64, ring.FM128} {
				for _, vis := range []mpcio.Visibility{mpcio.VisPublic, mpcio.VisSecret} {
					cases = append(cases, colocatedCase{worldSize: n, protocol: kind, field: field, vis: vis})
				}
			}
		}
	}
	return cases
}

func TestColocatedIoSync(t *testing.T) {
	for _, tc := range colocatedCases() {
		t.Run(fmt.Sprintf("%dx%vx%vx%v", tc.worldSize, tc.protocol, tc.field, tc.vis), func(t *testing.T) {
			conf := mpcio.RuntimeConfig{Protocol: tc.protocol, Field: tc.field}
			err := simulate.Run(tc.worldSize, conf, func(ctx context.Context, sess *mpcio.Session) error {
				cio, err := mpcio.NewColocatedIo(sess)
				if err != nil {
					return err
				}
				switch sess.Rank() {
				case 0:
					err = cio.HostSetVar("x", tensor.FromSlice([]int32{1, -2, 3, 0}, 1, 4), tc.vis)
				case 1:
					err = cio.HostSetVar("y", tensor.FromSlice([]float32{1, -2, 3, 0}, 1, 4), tc.vis)
				}
				if err != nil {
					return err
				}
				if err := cio.Sync(ctx); err != nil {
					return err
				}

				if !cio.DeviceHasVar("x") {
					return fmt.Errorf("rank %d: x not registered", sess.Rank())
				}
				x, err := cio.DeviceGetVar("x")
				if err != nil {
					return err
				}
				if x.IsPublic() != (tc.vis == mpcio.VisPublic) {
					return fmt.Errorf("rank %d: %v has wrong publicity", sess.Rank(), x)
				}
				if !x.IsInt() {
					return fmt.Errorf("rank %d: %v is not int", sess.Rank(), x)
				}

				y, err := cio.DeviceGetVar("y")
				if err != nil {
					return err
				}
				if !y.IsFxp() {
					return fmt.Errorf("rank %d: %v is not fxp", sess.Rank(), y)
				}
				if cio.DeviceHasVar("z") {
					return fmt.Errorf("rank %d: phantom variable z", sess.Rank())
				}
				if _, err := cio.DeviceGetVar("z"); err == nil {
					return fmt.Errorf("rank %d: DeviceGetVar(z) succeeded", sess.Rank())
				}
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestColocatedIoPrivate(t *testing.T) {
	conf := mpcio.RuntimeConfig{
		Protocol:                    protocol.Semi2K,
		Field:                       ring.FM64,
		EnableColocatedOptimization: true,
	}
	err := simulate.Run(2, conf, func(ctx context.Context, sess *mpcio.Session) error {
		cio, err := mpcio.NewColocatedIo(sess)
		if err != nil {
			return err
		}
		switch sess.Rank() {
		case 0:
			err = cio.HostSetVar("x", tensor.FromSlice([]int32{1, -2, 3, 0}, 1, 4), mpcio.VisSecret)
		case 1:
			err = cio.HostSetVar("y", tensor.FromSlice([]float32{1, -2, 3, 0}, 1, 4), mpcio.VisSecret)
		}
		if err != nil {
			return err
		}
		if err := cio.Sync(ctx); err != nil {
			return err
		}

		for name, wantOwner := range map[string]mpcio.RoleID{"x": 0, "y": 1} {
			v, err := cio.DeviceGetVar(name)
			if err != nil {
				return err
			}
			if !v.IsPrivate() {
				return fmt.Errorf("rank %d: %v is not private", sess.Rank(), v)
			}
			owner, ok := v.Owner()
			if !ok || owner != wantOwner {
				return fmt.Errorf("rank %d: %v owner = %d, want %d", sess.Rank(), v, owner, wantOwner)
			}
			// Only the owner holds the encoded plaintext.
			if (v.NumChunks() > 0) != (owner == sess.Rank()) {
				return fmt.Errorf("rank %d: %v holds %d chunks", sess.Rank(), v, v.NumChunks())
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestColocatedIoPublicStaysPublicUnderOptimization(t *testing.T) {
	conf := mpcio.RuntimeConfig{
		Protocol:                    protocol.Semi2K,
		Field:                       ring.FM64,
		EnableColocatedOptimization: true,
	}
	err := simulate.Run(2, conf, func(ctx context.Context, sess *mpcio.Session) error {
		cio, err := mpcio.NewColocatedIo(sess)
		if err != nil {
			return err
		}
		if sess.Rank() == 0 {
			if err := cio.HostSetVar("p", tensor.FromSlice([]int64{5}), mpcio.VisPublic); err != nil {
				return err
			}
		}
		if err := cio.Sync(ctx); err != nil {
			return err
		}
		v, err := cio.DeviceGetVar("p")
		if err != nil {
			return err
		}
		if !v.IsPublic() {
			return fmt.Errorf("rank %d: %v lost publicity", sess.Rank(), v)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestColocatedIoDuplicateAcrossParties(t *testing.T) {
	conf := mpcio.RuntimeConfig{Protocol: protocol.Semi2K, Field: ring.FM64}
	var mu sync.Mutex
	var errs []error
	err := simulate.Run(3, conf, func(ctx context.Context, sess *mpcio.Session) error {
		cio, err := mpcio.NewColocatedIo(sess)
		if err != nil {
			return err
		}
		if sess.Rank() == 0 || sess.Rank() == 2 {
			if err := cio.HostSetVar("x", tensor.FromSlice([]int32{1}), mpcio.VisSecret); err != nil {
				return err
			}
		}
		syncErr := cio.Sync(ctx)
		mu.Lock()
		errs = append(errs, syncErr)
		mu.Unlock()
		if cio.DeviceHasVar("x") {
			return fmt.Errorf("rank %d: duplicate round committed", sess.Rank())
		}
		return syncErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mpcio.ErrDuplicateVariable)

	// The round fails for every participant, not just the duplicating owners.
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.ErrorIs(t, e, mpcio.ErrDuplicateVariable)
	}
}

func TestColocatedIoDuplicateLocally(t *testing.T) {
	conf := mpcio.RuntimeConfig{Protocol: protocol.Semi2K, Field: ring.FM64}
	net := newLoopbackFabric(t, conf)
	cio := net[0]

	require.NoError(t, cio.HostSetVar("x", tensor.FromSlice([]int32{1}), mpcio.VisSecret))
	err := cio.HostSetVar("x", tensor.FromSlice([]int32{2}), mpcio.VisSecret)
	assert.ErrorIs(t, err, mpcio.ErrDuplicateVariable)
}

func TestColocatedIoRoundsAccumulate(t *testing.T) {
	conf := mpcio.RuntimeConfig{Protocol: protocol.Semi2K, Field: ring.FM64}
	err := simulate.Run(2, conf, func(ctx context.Context, sess *mpcio.Session) error {
		cio, err := mpcio.NewColocatedIo(sess)
		if err != nil {
			return err
		}
		if sess.Rank() == 0 {
			if err := cio.HostSetVar("a", tensor.FromSlice([]int32{1}), mpcio.VisSecret); err != nil {
				return err
			}
		}
		if err := cio.Sync(ctx); err != nil {
			return err
		}
		// Second round: the pending set was cleared, so re-registering a new
		// name succeeds and the first round's value survives.
		if sess.Rank() == 1 {
			if err := cio.HostSetVar("b", tensor.FromSlice([]int32{2}), mpcio.VisSecret); err != nil {
				return err
			}
		}
		if err := cio.Sync(ctx); err != nil {
			return err
		}
		if !cio.DeviceHasVar("a") || !cio.DeviceHasVar("b") {
			return fmt.Errorf("rank %d: missing variables after two rounds", sess.Rank())
		}
		return nil
	})
	require.NoError(t, err)
}

// Shares registered through sync stay additively consistent: every party's
// chunk of a SECRET variable sums back to the plaintext.
func TestColocatedIoSecretReconstructs(t *testing.T) {
	conf := mpcio.RuntimeConfig{Protocol: protocol.Semi2K, Field: ring.FM64}
	want := []int32{1, -2, 3, 0}

	var mu sync.Mutex
	chunks := make(map[mpcio.RoleID]*ring.Tensor)
	err := simulate.Run(3, conf, func(ctx context.Context, sess *mpcio.Session) error {
		cio, err := mpcio.NewColocatedIo(sess)
		if err != nil {
			return err
		}
		if sess.Rank() == 0 {
			if err := cio.HostSetVar("x", tensor.FromSlice(want), mpcio.VisSecret); err != nil {
				return err
			}
		}
		if err := cio.Sync(ctx); err != nil {
			return err
		}
		v, err := cio.DeviceGetVar("x")
		if err != nil {
			return err
		}
		if !v.IsSecret() {
			return fmt.Errorf("rank %d: %v is not secret", sess.Rank(), v)
		}
		mu.Lock()
		chunks[sess.Rank()] = v.Chunk(0)
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	sum := ring.NewTensor(ring.FM64, []int{4})
	for _, c := range chunks {
		require.NoError(t, sum.AddAssign(c))
	}
	for i, v := range want {
		lo, _ := sum.Get(i)
		assert.Equal(t, v, int32(uint32(lo)))
	}
}

func TestHostSetVarValidation(t *testing.T) {
	conf := mpcio.RuntimeConfig{Protocol: protocol.Semi2K, Field: ring.FM64}
	net := newLoopbackFabric(t, conf)
	cio := net[0]

	buf := tensor.FromSlice([]int32{1})
	assert.ErrorIs(t, cio.HostSetVar("", buf, mpcio.VisSecret), mpcio.ErrConfiguration)
	assert.ErrorIs(t, cio.HostSetVar("v", buf, mpcio.VisPrivate), mpcio.ErrUnsupportedVisibility)
	assert.ErrorIs(t, cio.HostSetVar("v", buf, mpcio.VisUnknown), mpcio.ErrUnsupportedVisibility)
}
