// Package formbridge provides a Go client SDK for the FormBridge form
// intake API. Applications use it to create submissions against an
// intake-defined form workflow and advance them to completion.
//
// The client retries transient failures (429 and transient 5xx statuses,
// connection errors, per-attempt timeouts) with a bounded backoff schedule
// before surfacing a typed error, so callers only ever observe the final
// outcome of a logical call.
//
// Basic usage:
//
//	client, err := formbridge.New(formbridge.WithAPIKey("sk-..."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	sub, err := client.CreateSubmission(ctx, "vendor-onboarding",
//	    formbridge.WithFields(map[string]any{"company": "Acme"}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.SetFields(ctx, sub.IntakeID, sub.SubmissionID,
//	    sub.ResumeToken, map[string]any{"email": "a@b.com"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	final, err := client.Submit(ctx, sub.IntakeID, sub.SubmissionID, result.ResumeToken)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(final.State)
//
// Every operation also has an Async variant returning a [Call] handle,
// for callers that want to overlap requests without managing their own
// goroutines.
//
// Error handling distinguishes server rejections from infrastructure
// failures:
//
//	sub, err := client.GetSubmission(ctx, intakeID, submissionID)
//	if err != nil {
//	    var apiErr *formbridge.APIError
//	    switch {
//	    case formbridge.IsConnectivityError(err):
//	        // never reached the server
//	    case errors.As(err, &apiErr):
//	        // server rejected: apiErr.StatusCode, apiErr.ErrorType
//	    }
//	}
package formbridge
