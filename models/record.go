package models

// Record is a free-form collection entry. The client supplies the shape;
// the server only stamps the id/uid envelope on create.
type Record map[string]any

func (r Record) ID() string {
	v, _ := r["id"].(string)
	return v
}

func (r Record) UID() string {
	v, _ := r["uid"].(string)
	return v
}

func (r Record) Source() string {
	v, _ := r["source"].(string)
	return v
}

func (r Record) Date() string {
	v, _ := r["date"].(string)
	return v
}

// WithEnvelope returns a copy of the record with id and uid set,
// overriding anything the client sent for those keys.
func (r Record) WithEnvelope(id, uid string) Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	out["id"] = id
	out["uid"] = uid
	return out
}
