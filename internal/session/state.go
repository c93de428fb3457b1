package session

// State enumerates the session client lifecycle. Transitions are driven by
// provider events translated in handleEvent; nothing mutates lifecycle fields
// outside the dispatcher mutex.
type State string

const (
	StateUninitialized State = "UNINITIALIZED"
	StateInitializing  State = "INITIALIZING"
	StateQRPending     State = "QR_PENDING"
	StateReady         State = "READY"
	StateDisconnected  State = "DISCONNECTED"
	StateAuthFailed    State = "AUTH_FAILED"
)
