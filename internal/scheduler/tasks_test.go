package scheduler

import "testing"

func TestLeadEnrichmentTaskRoundTrip(t *testing.T) {
	task, err := NewLeadEnrichmentTask(LeadEnrichmentPayload{LeadID: "lead-abc123"})
	if err != nil {
		t.Fatalf("NewLeadEnrichmentTask: %v", err)
	}
	if task.Type() != TaskLeadEnrichment {
		t.Errorf("task type = %q, want %q", task.Type(), TaskLeadEnrichment)
	}

	payload, err := ParseLeadEnrichmentPayload(task)
	if err != nil {
		t.Fatalf("ParseLeadEnrichmentPayload: %v", err)
	}
	if payload.LeadID != "lead-abc123" {
		t.Errorf("lead id = %q, want %q", payload.LeadID, "lead-abc123")
	}
}
