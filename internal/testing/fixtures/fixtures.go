// Package fixtures provides valid request payloads for every content type.
//
// Each factory returns a fresh map that tests may modify freely:
//
//	payload := fixtures.GalleryItem()
//	delete(payload, "media_type")
package fixtures

// Payload is a JSON request body
type Payload map[string]interface{}

// With returns a copy of p with the given fields set
func (p Payload) With(kv ...interface{}) Payload {
	out := make(Payload, len(p)+len(kv)/2)
	for k, v := range p {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

// Without returns a copy of p with the given fields removed
func (p Payload) Without(fields ...string) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// Event returns a valid event payload
func Event() Payload {
	return Payload{
		"title":       "Fall Festival",
		"description": "Games, food and fellowship for the whole family",
		"date":        "2024-10-12T18:00:00",
		"category":    "Outreach",
	}
}

// Sermon returns a valid sermon payload
func Sermon() Payload {
	return Payload{
		"title":   "The Coming King",
		"speaker": "Pastor John",
		"series":  "Advent",
		"date":    "2024-12-01T10:30:00",
	}
}

// LifeGroup returns a valid life group payload
func LifeGroup() Payload {
	return Payload{
		"name":         "Young Families",
		"leader":       "Sarah Miller",
		"meeting_day":  "Wednesday",
		"meeting_time": "7:00 PM",
		"location":     "North Side",
	}
}

// PrayerRequest returns a valid prayer request payload
func PrayerRequest() Payload {
	return Payload{
		"name":      "Anna",
		"request":   "Healing for my father",
		"is_public": true,
	}
}

// GalleryItem returns a valid gallery item payload
func GalleryItem() Payload {
	return Payload{
		"title":      "Baptism Sunday",
		"media_type": "photo",
		"url":        "https://cdn.example.org/gallery/baptism.jpg",
		"album":      "services",
	}
}

// ContactMessage returns a valid contact form payload
func ContactMessage() Payload {
	return Payload{
		"name":    "Ruth",
		"email":   "ruth@example.org",
		"message": "What time does the Sunday service start?",
	}
}
