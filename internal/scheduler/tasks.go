package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TaskBusinessSearch = "businesses.search"

type BusinessSearchPayload struct {
	JobID string `json:"jobId"`
}

// NewBusinessSearchTask builds a search task. Searches are not retried:
// a failed search is recorded on the job instead.
func NewBusinessSearchTask(payload BusinessSearchPayload) (*asynq.Task, error) {
	if payload.JobID == "" {
		return nil, fmt.Errorf("business search task: job id is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBusinessSearch, data, asynq.MaxRetry(0)), nil
}

func ParseBusinessSearchPayload(task *asynq.Task) (BusinessSearchPayload, error) {
	var payload BusinessSearchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BusinessSearchPayload{}, err
	}
	if payload.JobID == "" {
		return BusinessSearchPayload{}, fmt.Errorf("business search task: job id is required")
	}
	return payload, nil
}
