// Package scheduler runs background tasks on asynq. Its single job today is
// the routing sweep that retries stranded prequalified leads.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRoutingSweep = "routing.sweep"

type RoutingSweepPayload struct {
	Limit int `json:"limit"`
}

func NewRoutingSweepTask(payload RoutingSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRoutingSweep, data), nil
}

func ParseRoutingSweepPayload(task *asynq.Task) (RoutingSweepPayload, error) {
	var payload RoutingSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RoutingSweepPayload{}, err
	}
	return payload, nil
}
