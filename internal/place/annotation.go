package place

import "github.com/google/uuid"

// Annotation is a transient, view-facing projection of a POI record, suitable
// for map pins and list rows. Its ID is derived from the POI content so that
// repeated projections of the same POI are stable for diffing.
type Annotation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Subtitle  string    `json:"subtitle,omitempty"`
}

// AnnotationFromPOI projects a stored POI into an annotation with a
// deterministic content-derived ID.
func AnnotationFromPOI(p PointOfInterestRecord) Annotation {
	return Annotation{
		ID:        annotationID(p.Name, p.Latitude, p.Longitude),
		Name:      p.Name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Subtitle:  p.Subtitle,
	}
}

// ToPOI converts the annotation back into a POI record.
func (a Annotation) ToPOI() PointOfInterestRecord {
	return PointOfInterestRecord{
		Name:      a.Name,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Subtitle:  a.Subtitle,
	}
}

// annotationID hashes the POI identity into a name-based (SHA-1, version 5)
// UUID so the ID survives process restarts.
func annotationID(name string, lat, lon float64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(DedupeKey(name, lat, lon)))
}
