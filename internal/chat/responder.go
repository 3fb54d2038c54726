package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

// Delay is the simulated thinking time: Base plus a random share of Jitter.
// The zero value replies immediately.
type Delay struct {
	Base   time.Duration
	Jitter time.Duration
}

var DefaultDelay = Delay{Base: 1500 * time.Millisecond, Jitter: 3000 * time.Millisecond}

func (d Delay) next(frac func() float64) time.Duration {
	return d.Base + time.Duration(frac()*float64(d.Jitter))
}

// Responder wraps a Selector with the thinking delay and turns any failure
// into the TechnicalDifficulty reply.
type Responder struct {
	selector *Selector
	delay    Delay
	frac     func() float64
	logger   logging.Logger
}

func NewResponder(sel *Selector, delay Delay, logger logging.Logger) *Responder {
	return &Responder{selector: sel, delay: delay, frac: rand.Float64, logger: logger}
}

// Respond updates uc from message, waits, and returns the reply. Context
// cancellation during the wait yields the TechnicalDifficulty reply.
func (r *Responder) Respond(ctx context.Context, message string, uc *UserContext) (reply Reply) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(ctx, "reply generation panicked", "panic", fmt.Sprint(p))
			reply = technicalDifficulty()
		}
	}()

	uc.Observe(strings.ToLower(message))

	if err := sleepCtx(ctx, r.delay.next(r.frac)); err != nil {
		r.logger.Warn(ctx, "reply interrupted", "error", err)
		return technicalDifficulty()
	}

	return r.selector.Select(message, *uc)
}

func technicalDifficulty() Reply {
	return Reply{Category: CategoryGeneral, Emotion: EmotionConcerned, Content: TechnicalDifficulty}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
