package lifecycle

import (
	"errors"
	"testing"

	"github.com/Liamshmuel20/Rant.GO/model"
)

func TestRequestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		event   Event
		want    string
		wantErr bool
	}{
		{"approve pending", model.RequestPending, EventApproveRequest, model.RequestApprovedAwaiting, false},
		{"reject pending", model.RequestPending, EventRejectRequest, model.RequestRejected, false},
		{"pay after approval", model.RequestApprovedAwaiting, EventConfirmPayment, model.RequestPaidAwaiting, false},
		{"admin completes", model.RequestPaidAwaiting, EventAdminApprove, model.RequestCompleted, false},
		{"approve twice", model.RequestApprovedAwaiting, EventApproveRequest, "", true},
		{"approve rejected", model.RequestRejected, EventApproveRequest, "", true},
		{"pay before approval", model.RequestPending, EventConfirmPayment, "", true},
		{"pay twice", model.RequestPaidAwaiting, EventConfirmPayment, "", true},
		{"admin approve completed", model.RequestCompleted, EventAdminApprove, "", true},
		{"reject approved", model.RequestApprovedAwaiting, EventRejectRequest, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRequestStatus(tt.status, tt.event)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got status %q", got)
				}
				var transition *ErrTransition
				if !errors.As(err, &transition) {
					t.Errorf("Expected ErrTransition, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected status %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContractSignaturePath(t *testing.T) {
	// Walk the full signature sub-path in order
	status := model.ContractDraft
	steps := []struct {
		event Event
		want  string
	}{
		{EventSendToTenant, model.ContractAwaitingTenant},
		{EventTenantSign, model.ContractAwaitingLandlord},
		{EventLandlordSign, model.ContractAwaitingPayment},
		{EventConfirmPayment, model.ContractAwaitingAdmin},
		{EventAdminApprove, model.ContractActive},
	}

	for _, step := range steps {
		next, err := NextContractStatus(status, step.event)
		if err != nil {
			t.Fatalf("Event %q in status %q: unexpected error: %v", step.event, status, err)
		}
		if next != step.want {
			t.Fatalf("Event %q in status %q: expected %q, got %q", step.event, status, step.want, next)
		}
		status = next
	}
}

func TestContractIllegalTransitions(t *testing.T) {
	tests := []struct {
		status string
		event  Event
	}{
		{model.ContractDraft, EventTenantSign},
		{model.ContractDraft, EventLandlordSign},
		{model.ContractAwaitingTenant, EventLandlordSign},
		{model.ContractAwaitingPayment, EventAdminApprove},
		{model.ContractActive, EventConfirmPayment},
		{model.ContractActive, EventCancel},
		{model.ContractCancelled, EventSendToTenant},
		{model.ContractAwaitingAdmin, EventCancel},
	}

	for _, tt := range tests {
		if _, err := NextContractStatus(tt.status, tt.event); err == nil {
			t.Errorf("Expected error for event %q in status %q", tt.event, tt.status)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, status := range []string{model.RequestRejected, model.RequestCompleted} {
		if !RequestTerminal(status) {
			t.Errorf("Expected request status %q to be terminal", status)
		}
	}
	if RequestTerminal(model.RequestPending) {
		t.Error("Expected pending request to be non-terminal")
	}

	for _, status := range []string{model.ContractActive, model.ContractCancelled} {
		if !ContractTerminal(status) {
			t.Errorf("Expected contract status %q to be terminal", status)
		}
	}
	if ContractTerminal(model.ContractDraft) {
		t.Error("Expected draft contract to be non-terminal")
	}
}

func TestChatWritable(t *testing.T) {
	if !ChatWritable(model.ContractActive) {
		t.Error("Expected chat writable for active contract")
	}

	for _, status := range []string{
		model.ContractDraft,
		model.ContractAwaitingTenant,
		model.ContractAwaitingLandlord,
		model.ContractAwaitingPayment,
		model.ContractAwaitingAdmin,
		model.ContractCancelled,
	} {
		if ChatWritable(status) {
			t.Errorf("Expected chat not writable for status %q", status)
		}
	}
}
