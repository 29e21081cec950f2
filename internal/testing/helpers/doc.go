// Package helpers provides test utilities for HTTP handler testing.
//
// # Request Building
//
//	resp := helpers.NewRequest(t, "POST", "/api/events").
//	    WithBody(fixtures.Event()).
//	    Do(router)
//
// Use WithRawBody to send malformed JSON.
//
// # Response Assertions
//
//	helpers.AssertStatus(t, resp, http.StatusCreated)
//	helpers.AssertValidationError(t, resp, "media_type")
//	records := helpers.DecodeList(t, resp)
package helpers
