package entity

import "testing"

func TestConsultationTransitionsAreForwardOnly(t *testing.T) {
	cases := []struct {
		from ConsultationStatus
		to   ConsultationStatus
		want bool
	}{
		{ConsultationStatusOpen, ConsultationStatusOffering, true},
		{ConsultationStatusOpen, ConsultationStatusOfferSelected, true},
		{ConsultationStatusOpen, ConsultationStatusCancelled, true},
		{ConsultationStatusOffering, ConsultationStatusOfferSelected, true},
		{ConsultationStatusOffering, ConsultationStatusOpen, false},
		{ConsultationStatusOfferSelected, ConsultationStatusInChat, true},
		{ConsultationStatusOfferSelected, ConsultationStatusOffering, false},
		{ConsultationStatusOfferSelected, ConsultationStatusCancelled, true},
		{ConsultationStatusInChat, ConsultationStatusClosed, true},
		{ConsultationStatusInChat, ConsultationStatusOfferSelected, false},
		{ConsultationStatusInChat, ConsultationStatusCancelled, false},
		{ConsultationStatusClosed, ConsultationStatusInChat, false},
		{ConsultationStatusClosed, ConsultationStatusCancelled, false},
		{ConsultationStatusCancelled, ConsultationStatusOpen, false},
		{ConsultationStatusCancelled, ConsultationStatusClosed, false},
	}

	for _, tc := range cases {
		c := &Consultation{Status: tc.from}
		if got := c.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConsultationCanCancel(t *testing.T) {
	cancellable := []ConsultationStatus{
		ConsultationStatusOpen,
		ConsultationStatusOffering,
		ConsultationStatusOfferSelected,
	}
	for _, s := range cancellable {
		c := &Consultation{Status: s}
		if !c.CanCancel() {
			t.Errorf("CanCancel() = false for %s, want true", s)
		}
	}

	locked := []ConsultationStatus{
		ConsultationStatusPaid,
		ConsultationStatusInChat,
		ConsultationStatusClosed,
		ConsultationStatusCancelled,
	}
	for _, s := range locked {
		c := &Consultation{Status: s}
		if c.CanCancel() {
			t.Errorf("CanCancel() = true for %s, want false", s)
		}
	}
}

func TestConsultationChatOpen(t *testing.T) {
	for _, s := range []ConsultationStatus{
		ConsultationStatusOpen,
		ConsultationStatusOffering,
		ConsultationStatusOfferSelected,
		ConsultationStatusClosed,
		ConsultationStatusCancelled,
	} {
		c := &Consultation{Status: s}
		if c.ChatOpen() {
			t.Errorf("ChatOpen() = true for %s, want false", s)
		}
	}
	c := &Consultation{Status: ConsultationStatusInChat}
	if !c.ChatOpen() {
		t.Error("ChatOpen() = false for IN_CHAT, want true")
	}
}
