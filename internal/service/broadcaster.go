package service

import "vitacoin.app/rewardsplatform/internal/realtime"

// Broadcaster is the slice of the realtime hub the services push through.
// Delivery is best effort; implementations never return errors to callers.
type Broadcaster interface {
	SendToUser(userID string, event realtime.Event)
	Broadcast(event realtime.Event)
}
