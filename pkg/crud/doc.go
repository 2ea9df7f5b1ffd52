// Package crud is a small create/read/update/delete facade over one MongoDB
// collection.
//
// Operations address documents through a Target:
//   - ByIdentifier (built with ID) matches one document by _id. A 24-character
//     hex string is converted to an ObjectID.
//   - ByQuery (built with Where) matches every document satisfying a filter.
//   - FullDocument (built with Whole) matches by the document's own _id and, for
//     Update without a fragment, replaces the stored body.
//
// ParseTarget classifies untyped input (strings, ObjectIDs, maps) for callers
// such as the CLI that receive targets as data.
//
// # Usage
//
//	users, err := crud.New("app", "users", crud.WithConnector(connector))
//	if err != nil {
//		return err
//	}
//
//	doc := crud.Document{"name": "ada"}
//	id, err := users.Create(ctx, doc) // doc["_id"] == id
//
//	page, err := users.Read(ctx, crud.Where(crud.Query{"active": true}),
//		crud.Skip(10), crud.Limit(10), crud.Sort(bson.D{{Key: "name", Value: 1}}))
//
//	n, err := users.Update(ctx, crud.ID(id), crud.Document{"active": false})
//	n, err = users.Delete(ctx, crud.Where(nil)) // every document
//
// Store errors are returned unchanged, so driver error helpers such as
// mongo.IsDuplicateKeyError keep working.
package crud
