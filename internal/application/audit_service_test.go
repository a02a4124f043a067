package application_test

import (
	"testing"

	"github.com/felixgeelhaar/studyflow/internal/application"
)

func TestAuditService_HashChain(t *testing.T) {
	repo := &MockRepo{}
	audit := application.NewAuditService(repo)

	if err := audit.Log("session.done", "tester", map[string]interface{}{"date": "2024-01-05"}); err != nil {
		t.Fatal(err)
	}
	if err := audit.Log("session.skip", "tester", nil); err != nil {
		t.Fatal(err)
	}

	events, err := audit.GetTimeline()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d", len(events))
	}
	if events[1].PrevHash != events[0].Hash {
		t.Error("chain not linked")
	}

	violations, err := audit.VerifyIntegrity()
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Errorf("unexpected violations: %v", violations)
	}
}

func TestAuditService_DetectsTampering(t *testing.T) {
	repo := &MockRepo{}
	audit := application.NewAuditService(repo)
	_ = audit.Log("session.done", "tester", nil)
	_ = audit.Log("session.skip", "tester", nil)

	repo.Events[0].Action = "tampered"

	violations, err := audit.VerifyIntegrity()
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) == 0 {
		t.Error("tampering must be detected")
	}
}
