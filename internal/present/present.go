// Package present defines the presentation and ledger contracts between
// the simulation core and its collaborators.
//
// Engines never render anything. They emit ModalRequest and Alert
// values through these interfaces and a separate presentation layer
// decides what to do with them. Cash mutations route through Ledger so
// external ledger and UI observers stay consistent.
package present

// AlertType classifies a notification.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertScandal AlertType = "scandal"
	AlertError   AlertType = "error"
)

// Priority hints how urgently a notification should surface.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ModalRequest carries structured title and body data for a modal the
// UI collaborator owns.
type ModalRequest struct {
	Title    string
	Body     string
	Headline string
}

// Alert is a notification for the alert collaborator.
type Alert struct {
	Type     AlertType
	Icon     string
	Message  string
	Priority Priority
}

// Presenter receives modal presentation requests.
type Presenter interface {
	PresentModal(req ModalRequest)
}

// Alerter receives notifications.
type Alerter interface {
	PostAlert(alert Alert)
}

// Ledger owns cash mutation. Engines never write the cash field
// directly.
type Ledger interface {
	MutateCash(delta float64)
}

// NopPresenter discards modal requests. Useful for headless runs and
// tests that only assert on state.
type NopPresenter struct{}

// PresentModal implements Presenter.
func (NopPresenter) PresentModal(ModalRequest) {}

// NopAlerter discards alerts.
type NopAlerter struct{}

// PostAlert implements Alerter.
func (NopAlerter) PostAlert(Alert) {}
