package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/httpclient"
)

const defaultLogoutTimeout = 30 * time.Second

// Dispatcher owns the process-wide session client. The client handle and all
// lifecycle fields are guarded by mu; provider events are translated into
// state transitions under the same lock.
type Dispatcher struct {
	factory ClientFactory
	fetcher httpclient.HTTPClient
	logger  *zap.Logger
	cfg     Config

	mu           sync.Mutex
	client       Client
	state        State
	initializing bool
	qr           dispatcher.QR
	phoneNumber  string
}

func New(cfg Config, factory ClientFactory, fetcher httpclient.HTTPClient, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		factory: factory,
		fetcher: fetcher,
		logger:  logger,
		cfg:     cfg,
		state:   StateUninitialized,
	}
}

// Initialize is single-flight: a second caller while construction is in
// progress returns immediately without starting another client. Callers poll
// /status for the outcome.
func (d *Dispatcher) Initialize(ctx context.Context) error {
	d.mu.Lock()
	if d.state == StateReady {
		d.mu.Unlock()
		return nil
	}
	if d.initializing {
		d.mu.Unlock()
		return nil
	}
	stale := d.client
	d.client = nil
	d.initializing = true
	d.state = StateInitializing
	d.mu.Unlock()

	// A handle left over from a disconnect or auth failure would otherwise
	// keep its socket and event handler alive next to the replacement.
	if stale != nil {
		stale.Disconnect()
	}

	client, err := d.factory.NewClient(ctx)
	if err != nil {
		d.logger.Error("Failed to construct session client", zap.Error(err))
		d.reset(StateUninitialized, true)
		return dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	d.mu.Lock()
	d.client = client
	d.mu.Unlock()

	client.AddEventHandler(func(evt interface{}) {
		d.handleEvent(client, evt)
	})

	if client.StoreID() == nil {
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			d.logger.Error("Failed to open QR channel", zap.Error(err))
			d.reset(StateUninitialized, true)
			return dispatcher.NewError(constants.ErrCodeProviderError, err)
		}

		if err := client.Connect(); err != nil {
			d.logger.Error("Failed to connect session client", zap.Error(err))
			d.reset(StateUninitialized, true)
			return dispatcher.NewError(constants.ErrCodeProviderError, err)
		}

		go d.consumeQR(client, qrChan)
		return nil
	}

	if err := client.Connect(); err != nil {
		d.logger.Error("Failed to reconnect session client", zap.Error(err))
		d.reset(StateUninitialized, true)
		return dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	return nil
}

func (d *Dispatcher) consumeQR(source Client, ch <-chan whatsmeow.QRChannelItem) {
	for evt := range ch {
		if !d.isCurrent(source) {
			return
		}

		switch evt.Event {
		case "code":
			image, err := renderQR(evt.Code, d.cfg.QRSize)
			if err != nil {
				d.logger.Warn("Failed to render QR image", zap.Error(err))
			}

			d.mu.Lock()
			d.qr = dispatcher.QR{Data: evt.Code, Image: image}
			d.state = StateQRPending
			d.mu.Unlock()

			d.logger.Info("QR code issued, waiting for pairing",
				zap.Duration("timeout", evt.Timeout))

		case whatsmeow.QRChannelSuccess.Event:
			d.mu.Lock()
			d.qr = dispatcher.QR{}
			d.mu.Unlock()
			d.logger.Info("QR pairing succeeded")

		case whatsmeow.QRChannelTimeout.Event:
			d.logger.Warn("QR pairing timed out")
			d.reset(StateAuthFailed, false)

		default:
			if evt.Error != nil {
				d.logger.Error("QR channel error", zap.Error(evt.Error))
			}
			d.reset(StateAuthFailed, false)
		}
	}
}

// handleEvent ignores events from a client that has been replaced; only the
// current handle may drive the state machine.
func (d *Dispatcher) handleEvent(source Client, evt interface{}) {
	if !d.isCurrent(source) {
		return
	}

	switch e := evt.(type) {
	case *events.PairSuccess:
		d.mu.Lock()
		d.qr = dispatcher.QR{}
		d.mu.Unlock()
		d.logger.Info("Session paired", zap.String("jid", e.ID.String()))

	case *events.Connected:
		d.mu.Lock()
		d.state = StateReady
		d.initializing = false
		d.qr = dispatcher.QR{}
		if d.client != nil {
			if id := d.client.StoreID(); id != nil {
				d.phoneNumber = id.User
			}
		}
		number := d.phoneNumber
		d.mu.Unlock()
		d.logger.Info("Session ready", zap.String("phoneNumber", number))

	case *events.Disconnected:
		d.logger.Warn("Session disconnected")
		d.reset(StateDisconnected, false)

	case *events.StreamReplaced:
		d.logger.Warn("Session stream replaced by another connection")
		d.reset(StateDisconnected, false)

	case *events.LoggedOut:
		d.logger.Warn("Session logged out by provider", zap.Stringer("reason", e.Reason))
		d.reset(StateAuthFailed, true)

	case *events.ConnectFailure:
		d.logger.Error("Session connection failure", zap.String("reason", e.Reason.String()))
		d.reset(StateAuthFailed, true)
	}
}

func (d *Dispatcher) isCurrent(source Client) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client == source
}

// reset moves the machine to a not-ready state, clearing QR payload,
// phone number and the in-flight flag. dropClient also abandons the client
// handle.
func (d *Dispatcher) reset(next State, dropClient bool) {
	d.mu.Lock()
	d.state = next
	d.initializing = false
	d.qr = dispatcher.QR{}
	d.phoneNumber = ""
	if dropClient {
		d.client = nil
	}
	d.mu.Unlock()
}

func (d *Dispatcher) SendText(ctx context.Context, cmd dispatcher.SendCommand) (dispatcher.Result, error) {
	client, err := d.readyClient()
	if err != nil {
		return dispatcher.Result{}, err
	}

	jid, err := d.resolveJID(ctx, client, cmd.RecipientPhone)
	if err != nil {
		return dispatcher.Result{}, err
	}

	msgID := client.GenerateMessageID()
	content := &waE2E.Message{Conversation: proto.String(cmd.Body)}

	if _, err := client.SendMessage(ctx, jid, content, whatsmeow.SendRequestExtra{ID: msgID}); err != nil {
		d.logger.Error("Failed to send text message",
			zap.Error(err),
			zap.String("to", cmd.RecipientPhone))
		return dispatcher.Result{}, dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	return dispatcher.Result{MessageID: string(msgID)}, nil
}

func (d *Dispatcher) SendMedia(ctx context.Context, cmd dispatcher.SendCommand) (dispatcher.Result, error) {
	client, err := d.readyClient()
	if err != nil {
		return dispatcher.Result{}, err
	}

	jid, err := d.resolveJID(ctx, client, cmd.RecipientPhone)
	if err != nil {
		return dispatcher.Result{}, err
	}

	data, contentType, err := d.fetchMedia(ctx, cmd.MediaURL)
	if err != nil {
		d.logger.Error("Failed to fetch media",
			zap.Error(err),
			zap.String("mediaUrl", cmd.MediaURL))
		return dispatcher.Result{}, dispatcher.NewError(constants.ErrCodeMediaFetchFailed, err)
	}

	content, err := d.buildMediaMessage(ctx, client, data, contentType, cmd)
	if err != nil {
		return dispatcher.Result{}, err
	}

	msgID := client.GenerateMessageID()
	if _, err := client.SendMessage(ctx, jid, content, whatsmeow.SendRequestExtra{ID: msgID}); err != nil {
		d.logger.Error("Failed to send media message",
			zap.Error(err),
			zap.String("to", cmd.RecipientPhone))
		return dispatcher.Result{}, dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	return dispatcher.Result{MessageID: string(msgID)}, nil
}

func (d *Dispatcher) SendTemplate(ctx context.Context, cmd dispatcher.TemplateCommand) (dispatcher.Result, error) {
	return dispatcher.Result{}, dispatcher.NewError(constants.ErrCodeUnsupported, nil)
}

func (d *Dispatcher) buildMediaMessage(ctx context.Context, client Client, data []byte, contentType string, cmd dispatcher.SendCommand) (*waE2E.Message, error) {
	if strings.HasPrefix(contentType, "image/") {
		uploaded, err := client.Upload(ctx, data, whatsmeow.MediaImage)
		if err != nil {
			return nil, dispatcher.NewError(constants.ErrCodeProviderError, err)
		}

		return &waE2E.Message{
			ImageMessage: &waE2E.ImageMessage{
				URL:           proto.String(uploaded.URL),
				DirectPath:    proto.String(uploaded.DirectPath),
				Mimetype:      proto.String(contentType),
				Caption:       proto.String(cmd.Body),
				FileLength:    proto.Uint64(uploaded.FileLength),
				FileSHA256:    uploaded.FileSHA256,
				FileEncSHA256: uploaded.FileEncSHA256,
				MediaKey:      uploaded.MediaKey,
			},
		}, nil
	}

	uploaded, err := client.Upload(ctx, data, whatsmeow.MediaDocument)
	if err != nil {
		return nil, dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	return &waE2E.Message{
		DocumentMessage: &waE2E.DocumentMessage{
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			Mimetype:      proto.String(contentType),
			FileName:      proto.String(mediaFileName(cmd.MediaURL)),
			Caption:       proto.String(cmd.Body),
			FileLength:    proto.Uint64(uploaded.FileLength),
			FileSHA256:    uploaded.FileSHA256,
			FileEncSHA256: uploaded.FileEncSHA256,
			MediaKey:      uploaded.MediaKey,
		},
	}, nil
}

func (d *Dispatcher) fetchMedia(ctx context.Context, mediaURL string) ([]byte, string, error) {
	resp, err := d.fetcher.Get(ctx, mediaURL, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New("media url returned status " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}

func (d *Dispatcher) resolveJID(ctx context.Context, client Client, canonicalPhone string) (types.JID, error) {
	infos, err := client.IsOnWhatsApp(ctx, []string{"+" + canonicalPhone})
	if err != nil {
		d.logger.Error("Number lookup failed",
			zap.Error(err),
			zap.String("phone", canonicalPhone))
		return types.EmptyJID, dispatcher.NewError(constants.ErrCodeProviderError, err)
	}

	if len(infos) == 0 || !infos[0].IsIn || infos[0].JID.IsEmpty() {
		return types.EmptyJID, dispatcher.NewError(constants.ErrCodeNumberNotRegistered, nil)
	}

	return infos[0].JID, nil
}

func (d *Dispatcher) readyClient() (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReady || d.client == nil {
		return nil, dispatcher.NewError(constants.ErrCodeNotConnected, nil)
	}
	return d.client, nil
}

// Disconnect tears the session down. In-memory state is reset before the
// provider logout runs, so the caller always observes a clean slate even when
// logout fails; the logout error is still returned.
func (d *Dispatcher) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	client := d.client
	d.client = nil
	d.state = StateUninitialized
	d.initializing = false
	d.qr = dispatcher.QR{}
	d.phoneNumber = ""
	d.mu.Unlock()

	if client == nil {
		return nil
	}

	var logoutErr error
	if client.StoreID() != nil {
		timeout := d.cfg.LogoutTimeout
		if timeout <= 0 {
			timeout = defaultLogoutTimeout
		}
		logoutCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		logoutErr = client.Logout(logoutCtx)
	}
	client.Disconnect()

	if logoutErr != nil {
		d.logger.Error("Logout failed during disconnect", zap.Error(logoutErr))
		return dispatcher.NewError(constants.ErrCodeProviderError, logoutErr)
	}

	d.logger.Info("Session disconnected and state cleared")
	return nil
}

func (d *Dispatcher) Status() dispatcher.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	return dispatcher.Status{
		Configured:  true,
		Connected:   d.state == StateReady,
		PhoneNumber: d.phoneNumber,
		QRCode:      d.qr.Image,
	}
}

func (d *Dispatcher) QRCode() (dispatcher.QR, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.qr.Data == "" {
		return dispatcher.QR{}, false
	}
	return d.qr, true
}

// State reports the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func mediaFileName(mediaURL string) string {
	parsed, err := url.Parse(mediaURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "file"
	}
	return path.Base(parsed.Path)
}
