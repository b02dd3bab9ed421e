// Package realtime wraps the Pusher Channels HTTP client behind the
// RealtimePublisher port.
package realtime

import (
	"errors"

	"github.com/pusher/pusher-http-go/v5"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
)

// PusherPublisher publishes events over Pusher Channels.
type PusherPublisher struct {
	client pusher.Client
}

// NewPusherPublisher creates a publisher for the given Pusher app.
func NewPusherPublisher(appID, key, secret, cluster string) *PusherPublisher {
	return &PusherPublisher{
		client: pusher.Client{
			AppID:   appID,
			Key:     key,
			Secret:  secret,
			Cluster: cluster,
		},
	}
}

var _ portssvc.RealtimePublisher = (*PusherPublisher)(nil)

// Trigger publishes an event with a payload on a channel.
func (p *PusherPublisher) Trigger(channel string, event string, data any) error {
	return p.client.Trigger(channel, event, data)
}

// AuthorizePrivateChannel signs a private-channel subscription request.
func (p *PusherPublisher) AuthorizePrivateChannel(params []byte) ([]byte, error) {
	return p.client.AuthorizePrivateChannel(params)
}

// NoopPublisher discards all events. Used when no realtime credentials are
// configured.
type NoopPublisher struct{}

var _ portssvc.RealtimePublisher = (*NoopPublisher)(nil)

func (NoopPublisher) Trigger(channel string, event string, data any) error {
	return nil
}

func (NoopPublisher) AuthorizePrivateChannel(params []byte) ([]byte, error) {
	return nil, errors.New("realtime transport not configured")
}
