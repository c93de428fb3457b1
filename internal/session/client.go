package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Config struct {
	Datastore     Datastore     `mapstructure:"datastore"`
	QRSize        int           `mapstructure:"qr_size"`
	LogoutTimeout time.Duration `mapstructure:"logout_timeout"`
}

type Datastore struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Client is the slice of the whatsmeow client surface the dispatcher uses.
type Client interface {
	Connect() error
	Disconnect()
	Logout(ctx context.Context) error
	IsConnected() bool
	IsLoggedIn() bool
	AddEventHandler(handler whatsmeow.EventHandler) uint32
	GetQRChannel(ctx context.Context) (<-chan whatsmeow.QRChannelItem, error)
	IsOnWhatsApp(ctx context.Context, phones []string) ([]types.IsOnWhatsAppResponse, error)
	SendMessage(ctx context.Context, to types.JID, message *waE2E.Message, extra ...whatsmeow.SendRequestExtra) (whatsmeow.SendResponse, error)
	Upload(ctx context.Context, plaintext []byte, appInfo whatsmeow.MediaType) (whatsmeow.UploadResponse, error)
	GenerateMessageID() types.MessageID
	StoreID() *types.JID
}

// ClientFactory constructs provider clients. Kept behind an interface so the
// single-flight initialization guarantee is testable without a datastore.
type ClientFactory interface {
	NewClient(ctx context.Context) (Client, error)
}

type meowClient struct {
	*whatsmeow.Client
}

func (c *meowClient) StoreID() *types.JID {
	return c.Store.ID
}

type storeFactory struct {
	container *sqlstore.Container
	logger    *zap.Logger
}

// NewStoreFactory opens the whatsmeow credential datastore and returns a
// factory producing clients bound to its first device.
func NewStoreFactory(cfg Config, logger *zap.Logger) (ClientFactory, error) {
	driver := normalizeDriver(cfg.Datastore.Driver)

	container, err := sqlstore.New(context.Background(), driver, cfg.Datastore.DSN, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session datastore: %w", err)
	}

	if err := container.Upgrade(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to upgrade session datastore schema: %w", err)
	}

	return &storeFactory{container: container, logger: logger}, nil
}

func (f *storeFactory) NewClient(ctx context.Context) (Client, error) {
	device, err := f.container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load device from datastore: %w", err)
	}

	client := whatsmeow.NewClient(device, nil)
	client.EnableAutoReconnect = true
	client.AutoTrustIdentity = true

	return &meowClient{client}, nil
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(driver) {
	case "postgresql", "postgres", "pgx":
		return "pgx"
	default:
		return strings.ToLower(driver)
	}
}
