package service

import "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"

// StatusReporter is a side-effect-free read of dispatcher state into the
// externally visible status shape.
type StatusReporter interface {
	Report() dispatcher.Status
	QR() (dispatcher.QR, bool)
}

type statusReporter struct {
	dispatcher dispatcher.Dispatcher
}

func NewStatusReporter(d dispatcher.Dispatcher) StatusReporter {
	return &statusReporter{dispatcher: d}
}

func (r *statusReporter) Report() dispatcher.Status {
	return r.dispatcher.Status()
}

func (r *statusReporter) QR() (dispatcher.QR, bool) {
	return r.dispatcher.QRCode()
}
