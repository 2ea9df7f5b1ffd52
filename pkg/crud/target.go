package crud

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type (
	// Document is a stored record. Persisted documents carry an _id.
	Document = bson.M
	// Query is a filter; no field names are reserved.
	Query = bson.M
)

// Target selects the documents an operation applies to. It is one of
// ByIdentifier, ByQuery or FullDocument.
type Target interface {
	isTarget()
}

// ByIdentifier addresses exactly one document by _id.
type ByIdentifier struct {
	ID any
}

// ByQuery addresses every document matching Query. A nil Query matches all
// documents. An _id key inside Query is an ordinary filter field.
type ByQuery struct {
	Query Query
}

// FullDocument addresses a document by its own _id and, for Update without a
// fragment, supplies the replacement body.
type FullDocument struct {
	Document Document
}

func (ByIdentifier) isTarget() {}
func (ByQuery) isTarget()      {}
func (FullDocument) isTarget() {}

// ID returns an identifier target. A 24-character hex string is converted to
// a bson.ObjectID; any other value is used as the _id verbatim.
func ID(v any) ByIdentifier {
	if s, ok := v.(string); ok {
		if oid, err := bson.ObjectIDFromHex(s); err == nil {
			return ByIdentifier{ID: oid}
		}
	}
	return ByIdentifier{ID: v}
}

// Where returns a query target.
func Where(q Query) ByQuery {
	return ByQuery{Query: q}
}

// Whole returns a full-document target.
func Whole(doc Document) FullDocument {
	return FullDocument{Document: doc}
}

// ParseTarget classifies an untyped value the way loosely typed callers expect:
// strings and ObjectIDs are identifiers, maps carrying _id are identifiers,
// other maps (and nil) are queries.
func ParseTarget(v any) (Target, error) {
	switch t := v.(type) {
	case nil:
		return ByQuery{}, nil
	case Target:
		return t, nil
	case string:
		return ID(t), nil
	case bson.ObjectID:
		return ByIdentifier{ID: t}, nil
	case bson.M:
		return classify(t), nil
	case map[string]any:
		return classify(t), nil
	case bson.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return classify(m), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, v)
	}
}

func classify(m bson.M) Target {
	if id, ok := m["_id"]; ok {
		return ID(id)
	}
	return ByQuery{Query: m}
}

// resolve turns a target into a filter and reports whether it addresses a
// single document by _id.
func resolve(t Target) (filter any, single bool, err error) {
	switch t := t.(type) {
	case nil:
		return bson.M{}, false, nil
	case ByIdentifier:
		if t.ID == nil {
			return nil, false, ErrMissingIdentifier
		}
		return bson.D{{Key: "_id", Value: t.ID}}, true, nil
	case FullDocument:
		id, ok := t.Document["_id"]
		if !ok || id == nil {
			return nil, false, ErrMissingIdentifier
		}
		return bson.D{{Key: "_id", Value: ID(id).ID}}, true, nil
	case ByQuery:
		if t.Query == nil {
			return bson.M{}, false, nil
		}
		return t.Query, false, nil
	default:
		return nil, false, fmt.Errorf("%w: %T", ErrUnsupportedTarget, t)
	}
}

// withoutID copies doc minus its _id. The caller's map is not modified.
func withoutID(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
