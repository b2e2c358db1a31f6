// Package lifecycle owns the rental state machine: which events are
// legal in which status, and what the resulting status is. Handlers
// and services consult this table instead of comparing status strings
// ad hoc, so an illegal transition is rejected in exactly one place.
package lifecycle

import (
	"fmt"

	"github.com/Liamshmuel20/Rant.GO/model"
)

// Event is something a party does to a rental.
type Event string

const (
	// Request path
	EventApproveRequest Event = "approve_request"
	EventRejectRequest  Event = "reject_request"
	EventConfirmPayment Event = "confirm_payment"
	EventAdminApprove   Event = "admin_approve"

	// Contract signature sub-path
	EventSendToTenant Event = "send_to_tenant"
	EventTenantSign   Event = "tenant_sign"
	EventLandlordSign Event = "landlord_sign"
	EventCancel       Event = "cancel"
)

// ErrTransition reports an event applied in a status that does not
// define it. Callers map it to a 409.
type ErrTransition struct {
	Status string
	Event  Event
}

func (e *ErrTransition) Error() string {
	return fmt.Sprintf("event %q not allowed in status %q", e.Event, e.Status)
}

// requestTransitions is the total transition table for RentalRequest
// statuses. Approval appears exactly once, from pending: a request
// already approved cannot be approved again, which is what keeps a
// double-submitted approval from minting a second contract.
var requestTransitions = map[string]map[Event]string{
	model.RequestPending: {
		EventApproveRequest: model.RequestApprovedAwaiting,
		EventRejectRequest:  model.RequestRejected,
	},
	model.RequestApprovedAwaiting: {
		EventConfirmPayment: model.RequestPaidAwaiting,
	},
	model.RequestPaidAwaiting: {
		EventAdminApprove: model.RequestCompleted,
	},
}

// contractTransitions covers both the signature sub-path and the
// payment tail shared with the request path.
var contractTransitions = map[string]map[Event]string{
	model.ContractDraft: {
		EventSendToTenant: model.ContractAwaitingTenant,
		EventCancel:       model.ContractCancelled,
	},
	model.ContractAwaitingTenant: {
		EventTenantSign: model.ContractAwaitingLandlord,
		EventCancel:     model.ContractCancelled,
	},
	model.ContractAwaitingLandlord: {
		EventLandlordSign: model.ContractAwaitingPayment,
		EventCancel:       model.ContractCancelled,
	},
	model.ContractAwaitingPayment: {
		EventConfirmPayment: model.ContractAwaitingAdmin,
		EventCancel:         model.ContractCancelled,
	},
	model.ContractAwaitingAdmin: {
		EventAdminApprove: model.ContractActive,
	},
}

// NextRequestStatus returns the request status after applying event,
// or ErrTransition if the table does not define it.
func NextRequestStatus(status string, event Event) (string, error) {
	if next, ok := requestTransitions[status][event]; ok {
		return next, nil
	}
	return "", &ErrTransition{Status: status, Event: event}
}

// NextContractStatus returns the contract status after applying event,
// or ErrTransition if the table does not define it.
func NextContractStatus(status string, event Event) (string, error) {
	if next, ok := contractTransitions[status][event]; ok {
		return next, nil
	}
	return "", &ErrTransition{Status: status, Event: event}
}

// RequestTerminal reports whether a request status has no outgoing
// transitions.
func RequestTerminal(status string) bool {
	return len(requestTransitions[status]) == 0
}

// ContractTerminal reports whether a contract status has no outgoing
// transitions.
func ContractTerminal(status string) bool {
	return len(contractTransitions[status]) == 0
}

// ChatWritable reports whether parties may post to the contract's chat.
func ChatWritable(contractStatus string) bool {
	return contractStatus == model.ContractActive
}
