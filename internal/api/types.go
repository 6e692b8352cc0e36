package api

// ActorPayload is the wire representation of a submission actor.
type ActorPayload struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// CreateSubmissionRequest represents the POST /intake/{intakeId}/submissions request.
type CreateSubmissionRequest struct {
	Fields         map[string]any `json:"fields,omitempty"`
	Actor          *ActorPayload  `json:"actor,omitempty"`
	IdempotencyKey string         `json:"idempotencyKey,omitempty"`
}

// SetFieldsRequest represents the PATCH /intake/{intakeId}/submissions/{submissionId} request.
type SetFieldsRequest struct {
	ResumeToken string         `json:"resumeToken"`
	Fields      map[string]any `json:"fields"`
	Actor       *ActorPayload  `json:"actor,omitempty"`
}

// SubmitRequest represents the POST /intake/{intakeId}/submissions/{submissionId}/submit request.
type SubmitRequest struct {
	ResumeToken string        `json:"resumeToken"`
	Actor       *ActorPayload `json:"actor,omitempty"`
}
