// Package model defines the content types, schemas and error documents of the Chapel API.
//
// # Entities
//
// Six content types are served, each stored in its own collection:
//
//   - Event: dated church events (collection "event")
//   - Sermon: recorded sermons with optional series and media links
//   - LifeGroup: small groups with meeting details
//   - PrayerRequest: prayer requests, optionally public
//   - GalleryItem: photos and videos grouped by album
//   - ContactMessage: contact form submissions (write only)
//
// Collection names come from an explicit table keyed by the Entity tag:
//
//	model.EntitySermon.Collection() // "sermon"
//
// # Schema Registry
//
// Each entity has a Schema listing its fields in order. Validate turns a decoded
// JSON object into the Document to store, or returns a *ValidationError listing
// every offending field:
//
//	schema, _ := model.SchemaFor(model.EntityGalleryItem)
//	doc, err := schema.Validate(payload)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
