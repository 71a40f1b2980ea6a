// Package scheduler provides asynq-backed background jobs: enqueueing
// from the API process and a worker that runs them.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadEnrichment = "leads.enrich"

type LeadEnrichmentPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadEnrichmentTask(payload LeadEnrichmentPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadEnrichment, data), nil
}

func ParseLeadEnrichmentPayload(task *asynq.Task) (LeadEnrichmentPayload, error) {
	var payload LeadEnrichmentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadEnrichmentPayload{}, err
	}
	return payload, nil
}
