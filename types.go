package formbridge

// Actor identifies who performs a submission action.
type Actor struct {
	Kind string
	ID   string
	Name string
}

// Submission is a stateful instance of an intake's form in progress.
type Submission struct {
	SubmissionID string
	IntakeID     string
	State        string
	// ResumeToken is the opaque credential required to mutate the
	// submission. It may rotate on each mutation; always carry forward
	// the most recent one.
	ResumeToken   string
	Fields        map[string]any
	MissingFields []string
	Schema        map[string]any
	CreatedAt     string
	UpdatedAt     string
	// Raw is the full decoded response body.
	Raw map[string]any
}

// FieldsResult is the outcome of a SetFields call.
type FieldsResult struct {
	SubmissionID  string
	State         string
	ResumeToken   string
	MissingFields []string
	// Raw is the full decoded response body.
	Raw map[string]any
}

// submissionFromResponse maps a decoded response body into a Submission.
// Absent optional fields stay at their zero value.
func submissionFromResponse(data map[string]any) *Submission {
	return &Submission{
		SubmissionID:  stringField(data, "submissionId"),
		IntakeID:      stringField(data, "intakeId"),
		State:         stringField(data, "state"),
		ResumeToken:   stringField(data, "resumeToken"),
		Fields:        objectField(data, "fields"),
		MissingFields: stringSliceField(data, "missingFields"),
		Schema:        objectField(data, "schema"),
		CreatedAt:     timestampField(data, "createdAt"),
		UpdatedAt:     timestampField(data, "updatedAt"),
		Raw:           data,
	}
}

// fieldsResultFromResponse maps a decoded response body into a FieldsResult.
func fieldsResultFromResponse(data map[string]any) *FieldsResult {
	return &FieldsResult{
		SubmissionID:  stringField(data, "submissionId"),
		State:         stringField(data, "state"),
		ResumeToken:   stringField(data, "resumeToken"),
		MissingFields: stringSliceField(data, "missingFields"),
		Raw:           data,
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func objectField(data map[string]any, key string) map[string]any {
	m, _ := data[key].(map[string]any)
	return m
}

func stringSliceField(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// timestampField reads a timestamp from the "metadata" sub-object when
// present, falling back to a top-level field of the same name. Some server
// versions nest createdAt/updatedAt under metadata.
func timestampField(data map[string]any, key string) string {
	if meta, ok := data["metadata"].(map[string]any); ok {
		return stringField(meta, key)
	}
	return stringField(data, key)
}
