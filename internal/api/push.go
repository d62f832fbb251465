package api

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// PushHandler receives decoded push events. Called from the push goroutine.
type PushHandler func(PushEvent)

// PushChannel maintains a WebSocket connection to the backend push endpoint
// and delivers emailSynced/emailReceived events. A dead channel reconnects
// with exponential backoff; it never takes the shell down.
type PushChannel struct {
	url     string
	handler PushHandler
	logger  *log.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPushChannel creates a push channel for the given ws:// or wss:// URL.
func NewPushChannel(wsURL string, handler PushHandler, logger *log.Logger) *PushChannel {
	return &PushChannel{
		url:     wsURL,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start begins the connect/read loop in a goroutine.
func (p *PushChannel) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

// Stop tears down the connection and waits for the loop to exit.
func (p *PushChannel) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *PushChannel) run(ctx context.Context) {
	defer close(p.done)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // keep reconnecting for the life of the shell
	bo.MaxInterval = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}
		connected, err := p.readLoop(ctx)
		if err != nil && p.logger != nil {
			p.logger.Printf("push channel disconnected: %v", err)
		}
		if connected {
			// A drop after a healthy connection starts a fresh backoff ramp.
			bo.Reset()
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(bo.NextBackOff()):
		}
	}
}

func (p *PushChannel) readLoop(ctx context.Context) (bool, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, p.url, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	// Close the connection when the context goes away so ReadMessage
	// unblocks. Scoped to this connection so the watchdog exits with the
	// read loop instead of piling up across reconnects.
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}
		var ev PushEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			if p.logger != nil {
				p.logger.Printf("push channel: malformed event: %v", err)
			}
			continue
		}
		switch ev.Type {
		case PushEmailSynced, PushEmailReceived:
			if p.handler != nil {
				p.handler(ev)
			}
		default:
			// Unknown event types are ignored for forward compatibility.
		}
	}
}
