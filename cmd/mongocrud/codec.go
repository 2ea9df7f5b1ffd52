package main

import (
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/mongocrud/pkg/crud"
)

// decodeDocument parses relaxed or canonical Extended JSON into a document.
func decodeDocument(s string) (crud.Document, error) {
	var doc crud.Document
	if err := bson.UnmarshalExtJSON([]byte(s), false, &doc); err != nil {
		return nil, fmt.Errorf("invalid document %q: %w", s, err)
	}
	return doc, nil
}

// decodeTarget accepts either an Extended JSON object or a bare identifier.
func decodeTarget(s string) (crud.Target, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return crud.ParseTarget(s)
	}
	doc, err := decodeDocument(s)
	if err != nil {
		return nil, err
	}
	return crud.ParseTarget(doc)
}

// decodeSort keeps key order, which decides sort precedence.
func decodeSort(s string) (bson.D, error) {
	if s == "" {
		return nil, nil
	}
	var order bson.D
	if err := bson.UnmarshalExtJSON([]byte(s), false, &order); err != nil {
		return nil, fmt.Errorf("invalid sort %q: %w", s, err)
	}
	return order, nil
}

func writeDocument(w io.Writer, doc crud.Document) error {
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
