package simulator

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// Chaos injects latency and random network failures into gateway calls.
type Chaos struct {
	FailureRate  float64
	MinLatencyMS int
	MaxLatencyMS int
}

// delay sleeps a random duration in [MinLatencyMS, MaxLatencyMS). It returns
// the context error if ctx ends first.
func (c Chaos) delay(ctx context.Context) error {
	if c.MinLatencyMS <= 0 && c.MaxLatencyMS <= 0 {
		return ctx.Err()
	}

	sleepMS := c.MinLatencyMS
	if rangeMS := c.MaxLatencyMS - c.MinLatencyMS; rangeMS > 0 {
		if offset, err := rand.Int(rand.Reader, big.NewInt(int64(rangeMS))); err == nil {
			sleepMS += int(offset.Int64())
		}
	}

	timer := time.NewTimer(time.Duration(sleepMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c Chaos) fail() bool {
	if c.FailureRate <= 0 {
		return false
	}
	if c.FailureRate >= 1 {
		return true
	}

	const precision = 1000000
	randomNum, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return false
	}

	threshold := int64(c.FailureRate * precision)
	return randomNum.Int64() < threshold
}

func approvalCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	code := n.String()
	for len(code) < 6 {
		code = "0" + code
	}
	return code
}
