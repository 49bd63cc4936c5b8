package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/archipelago-gg/apclient/pkg/protocol"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/archipelago-gg/apclient"

var tracer = otel.Tracer(tracerName)

// AnonymousClient is a connection that has received the server's RoomInfo
// announcement but has not yet authenticated. It is consumed by Login;
// after that every operation returns ErrClientConsumed.
type AnonymousClient struct {
	stream   *messageStream[protocol.AnonymousServerMessage]
	sink     *messageSink
	roomInfo *protocol.RoomInfo
	logger   *slog.Logger
	metrics  *Metrics
	consumed bool
}

// Dial opens a connection to the given endpoint and performs the transport
// handshake: it awaits the mandatory RoomInfo announcement that is the
// first message of every session. Any other message, a parse error, or an
// immediate close is a fatal construction failure and the connection is
// released.
//
// The endpoint is split on its last colon into host and optional port;
// without a port, the default 38281 is used. cfg may be nil for defaults.
func Dial(ctx context.Context, endpoint string, cfg *Config) (*AnonymousClient, error) {
	cfg = cfg.withDefaults()

	ctx, span := tracer.Start(ctx, "apclient.Dial",
		trace.WithAttributes(attribute.String("server.endpoint", endpoint)))
	defer span.End()

	var dialer websocket.Dialer
	if cfg.Dialer != nil {
		dialer = *cfg.Dialer
	} else {
		dialer = *websocket.DefaultDialer
	}
	dialer.HandshakeTimeout = cfg.HandshakeTimeout

	url := endpointURL(endpoint)
	wsconn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return nil, fmt.Errorf("apclient: failed to connect to %s: %w", url, err)
	}
	if cfg.MaxMessageSize > 0 {
		wsconn.SetReadLimit(cfg.MaxMessageSize)
	}

	client, err := newAnonymousClient(ctx, newWSConn(wsconn), cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handshake failed")
		return nil, err
	}
	return client, nil
}

// newAnonymousClient wires the stream and sink over an established
// transport and consumes the RoomInfo announcement. On failure the
// transport is closed; no partial session is observable.
func newAnonymousClient(ctx context.Context, conn Conn, cfg *Config) (*AnonymousClient, error) {
	stream := newMessageStream(conn, protocol.DecodeAnonymousServer, nil, cfg.Logger, cfg.Metrics)
	sink := newMessageSink(conn, cfg.Logger, cfg.Metrics)

	msg, err := stream.Next(ctx)
	if err != nil {
		conn.Close()
		if errors.Is(err, io.EOF) {
			return nil, ErrStreamEnded
		}
		return nil, err
	}

	roomInfo, ok := msg.(*protocol.RoomInfo)
	if !ok {
		conn.Close()
		return nil, &SequenceError{Want: "RoomInfo", Got: msg}
	}

	cfg.Logger.Debug("received room info",
		"seed", roomInfo.SeedName,
		"version", roomInfo.Version.String(),
		"games", len(roomInfo.Games))

	return &AnonymousClient{
		stream:   stream,
		sink:     sink,
		roomInfo: roomInfo,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// RoomInfo returns the server's session description, received at
// construction. It never changes for the lifetime of the connection.
func (c *AnonymousClient) RoomInfo() *protocol.RoomInfo {
	return c.roomInfo
}

// GetDataPackage requests the data package for every game listed in the
// session's RoomInfo and awaits exactly one reply. Any reply other than a
// DataPackage is a SequenceError; a server-reported InvalidPacket is
// surfaced the same way, naming the mismatch.
func (c *AnonymousClient) GetDataPackage(ctx context.Context) (*protocol.DataPackage, error) {
	if c.consumed {
		return nil, ErrClientConsumed
	}

	ctx, span := tracer.Start(ctx, "apclient.GetDataPackage")
	defer span.End()

	err := c.sink.Send(ctx, &protocol.GetDataPackage{Games: c.roomInfo.Games})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	msg, err := c.stream.Next(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrStreamEnded
		}
		span.RecordError(err)
		return nil, err
	}

	pkg, ok := msg.(*protocol.DataPackage)
	if !ok {
		err := &SequenceError{Want: "DataPackage", Got: msg}
		span.RecordError(err)
		return nil, err
	}
	return pkg, nil
}

// LoginOptions carries the arguments of the Connect request.
type LoginOptions struct {
	// Password is the room password. nil means no password; an empty
	// string is a password like any other.
	Password *string

	// Game is the name of the game this client plays.
	Game string

	// Name is the slot name to authenticate as.
	Name string

	// Tags are capability tags of this client, e.g. "DeathLink".
	Tags []string

	// ItemsHandling configures which items the server should send.
	ItemsHandling protocol.ItemsHandlingFlags

	// SlotData requests slot-specific opaque data in the reply.
	SlotData bool
}

// Login authenticates the session, consuming the AnonymousClient. It sends
// a Connect request carrying the options, the supported protocol version,
// and a freshly generated client identifier, flushes, and awaits exactly
// one reply:
//
//   - Connected: success. The RoomInfo and any messages still buffered
//     from multi-message frames move into the returned *Client.
//   - ConnectionRefused: a *RefusedError with the server's reasons.
//   - anything else: a *SequenceError with the reply for diagnostics.
//
// The AnonymousClient is spent regardless of outcome; on failure the
// transport is closed. No retry is attempted here, callers redo the whole
// handshake if they want one.
func (c *AnonymousClient) Login(ctx context.Context, opts LoginOptions) (*Client, error) {
	if c.consumed {
		return nil, ErrClientConsumed
	}
	c.consumed = true

	ctx, span := tracer.Start(ctx, "apclient.Login",
		trace.WithAttributes(
			attribute.String("game", opts.Game),
			attribute.String("slot", opts.Name)))
	defer span.End()

	connect := &protocol.Connect{
		Password:      opts.Password,
		Game:          opts.Game,
		Name:          opts.Name,
		UUID:          uuid.NewString(),
		Version:       protocol.SupportedVersion,
		ItemsHandling: opts.ItemsHandling,
		Tags:          opts.Tags,
		SlotData:      opts.SlotData,
	}
	if connect.Tags == nil {
		connect.Tags = []string{}
	}

	if err := c.sink.Send(ctx, connect); err != nil {
		c.close()
		span.RecordError(err)
		return nil, err
	}
	if err := c.sink.Flush(); err != nil {
		c.close()
		span.RecordError(err)
		return nil, &TransportError{Err: err}
	}

	msg, err := c.stream.Next(ctx)
	if err != nil {
		c.close()
		if errors.Is(err, io.EOF) {
			err = ErrStreamEnded
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return nil, err
	}

	switch reply := msg.(type) {
	case *protocol.Connected:
		c.logger.Debug("authenticated",
			"team", reply.Team,
			"slot", reply.Slot,
			"hint_points", reply.HintPoints)
		return &Client{
			stream: newMessageStream(c.stream.conn, protocol.DecodeServer,
				c.stream.residual(), c.logger, c.metrics),
			sink:      c.sink,
			roomInfo:  c.roomInfo,
			connected: reply,
			logger:    c.logger,
		}, nil

	case *protocol.ConnectionRefused:
		c.close()
		err := &RefusedError{Errors: reply.Errors}
		span.RecordError(err)
		span.SetStatus(codes.Error, "connection refused")
		return nil, err

	default:
		c.close()
		err := &SequenceError{Want: "Connected", Got: msg}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected reply")
		return nil, err
	}
}

// Close releases the connection without authenticating. The client is
// consumed.
func (c *AnonymousClient) Close() error {
	c.consumed = true
	return c.stream.conn.Close()
}

func (c *AnonymousClient) close() {
	c.stream.conn.Close()
}

// Client is an authenticated session. It retains the RoomInfo and the
// Connected identity snapshot obtained at authentication time, delivers
// server messages in arrival order through Next, and exposes a sender per
// client message. It does not interpret message contents; that is the
// caller's concern.
type Client struct {
	stream *messageStream[protocol.ServerMessage]
	sink   *messageSink

	roomInfo  *protocol.RoomInfo
	connected *protocol.Connected

	logger *slog.Logger
}

// RoomInfo returns the retained session description.
func (c *Client) RoomInfo() *protocol.RoomInfo {
	return c.roomInfo
}

// Connected returns the identity snapshot from authentication.
func (c *Client) Connected() *protocol.Connected {
	return c.connected
}

// Next yields the next server message in arrival order. It returns io.EOF
// when the server closes the connection; that is a clean termination, not
// an error condition.
func (c *Client) Next(ctx context.Context) (protocol.ServerMessage, error) {
	return c.stream.Next(ctx)
}

// Close releases the underlying connection. Safe at any suspension point;
// a concurrent Next returns a transport failure or io.EOF.
func (c *Client) Close() error {
	return c.stream.conn.Close()
}

func (c *Client) send(ctx context.Context, msg protocol.ClientMessage) error {
	if err := c.sink.Send(ctx, msg); err != nil {
		return err
	}
	return c.sink.Flush()
}

// Say sends chat text to be distributed to other clients.
func (c *Client) Say(ctx context.Context, text string) error {
	return c.send(ctx, &protocol.Say{Text: text})
}

// CheckLocations reports the given location ids as checked. Duplicates and
// resends are harmless.
func (c *Client) CheckLocations(ctx context.Context, locations []int64) error {
	return c.send(ctx, &protocol.LocationChecks{Locations: locations})
}

// ScoutLocations asks for the items at the given locations without
// checking them. The server answers with a LocationInfo message on the
// regular stream.
func (c *Client) ScoutLocations(ctx context.Context, locations []int64, createAsHint int64) error {
	return c.send(ctx, &protocol.LocationScouts{
		Locations:    locations,
		CreateAsHint: createAsHint,
	})
}

// SetStatus reports the client's game state, e.g. StatusGoal on
// completion.
func (c *Client) SetStatus(ctx context.Context, status protocol.ClientStatus) error {
	return c.send(ctx, &protocol.StatusUpdate{Status: status})
}

// Sync asks the server to restate all received items from index 0.
func (c *Client) Sync(ctx context.Context) error {
	return c.send(ctx, &protocol.Sync{})
}

// Bounce forwards data to every client matching any of the given targets.
func (c *Client) Bounce(ctx context.Context, bounce *protocol.Bounce) error {
	return c.send(ctx, bounce)
}

// Get requests values from the server's data storage; the Retrieved reply
// arrives on the regular stream.
func (c *Client) Get(ctx context.Context, keys []string) error {
	return c.send(ctx, &protocol.Get{Keys: keys})
}

// Set writes to the server's data storage.
func (c *Client) Set(ctx context.Context, set *protocol.Set) error {
	return c.send(ctx, set)
}

// SetNotify subscribes this session to SetReply packets for the given
// keys.
func (c *Client) SetNotify(ctx context.Context, keys []string) error {
	return c.send(ctx, &protocol.SetNotify{Keys: keys})
}

// UpdateConnection changes the session's items handling and tags.
func (c *Client) UpdateConnection(ctx context.Context, itemsHandling protocol.ItemsHandlingFlags, tags []string) error {
	return c.send(ctx, &protocol.ConnectUpdate{
		ItemsHandling: itemsHandling,
		Tags:          tags,
	})
}

// DeathLink sends a death to every client carrying the "DeathLink" tag.
func (c *Client) DeathLink(ctx context.Context, link protocol.DeathLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return c.Bounce(ctx, &protocol.Bounce{
		Tags: []string{"DeathLink"},
		Data: data,
	})
}
