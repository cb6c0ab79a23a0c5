package actuation

import (
	"context"
	"log"
)

// Channel delivers open signals to the physical locker hardware.
// SignalOpen is fire-and-forget: implementations must not block on delivery
// and have no way to report failure back to the authorization decision,
// which is already made by the time the signal is sent.
type Channel interface {
	SignalOpen(ctx context.Context, lockerID string)
}

// LogChannel writes signals to the operational log. It stands in until the
// hardware gateway integration lands.
type LogChannel struct{}

func NewLogChannel() *LogChannel {
	return &LogChannel{}
}

func (*LogChannel) SignalOpen(_ context.Context, lockerID string) {
	log.Printf("actuation: open signal for locker %s", lockerID)
}
