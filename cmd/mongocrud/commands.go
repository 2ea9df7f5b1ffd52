package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mongocrud/pkg/crud"
	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

var errReplaceNeedsID = errors.New("a single update argument must be a document with _id")

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <document>...",
		Short: "Insert documents and print their identifiers",
		Example: `  mongocrud -c users create '{"name":"ada"}'
  mongocrud -c users create '{"n":1}' '{"n":2}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.crud()
			if err != nil {
				return err
			}
			for _, arg := range args {
				doc, err := decodeDocument(arg)
				if err != nil {
					return err
				}
				id, err := c.Create(cmd.Context(), doc)
				if err != nil {
					return fmt.Errorf("failed to create document: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
			}
			return nil
		},
	}
}

func newReadCmd(a *app) *cobra.Command {
	var (
		skip  int64
		limit int64
		sort  string
		one   bool
	)

	cmd := &cobra.Command{
		Use:   "read [target]",
		Short: "Print documents by identifier or query",
		Long: `Print the document with the given identifier, or every document matching
a query. Without a target all documents are listed, up to --limit.`,
		Example: `  mongocrud -c users read 64b7f0c2e4b0a1a2b3c4d5e6
  mongocrud -c users read '{"active":true}' --sort '{"name":1}' --skip 10 --limit 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.crud()
			if err != nil {
				return err
			}

			var target crud.Target = crud.ByQuery{}
			if len(args) == 1 {
				if target, err = decodeTarget(args[0]); err != nil {
					return err
				}
			}

			if one {
				doc, err := c.ReadOne(cmd.Context(), target)
				if err != nil {
					return fmt.Errorf("failed to read document: %w", err)
				}
				if doc == nil {
					return nil
				}
				return writeDocument(cmd.OutOrStdout(), doc)
			}

			order, err := decodeSort(sort)
			if err != nil {
				return err
			}
			docs, err := c.Read(cmd.Context(), target, crud.Skip(skip), crud.Limit(limit), crud.Sort(order))
			if err != nil {
				return fmt.Errorf("failed to read documents: %w", err)
			}
			for _, doc := range docs {
				if err := writeDocument(cmd.OutOrStdout(), doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&skip, "skip", 0, "number of matches to skip")
	cmd.Flags().Int64Var(&limit, "limit", crud.DefaultLimit, "maximum number of matches")
	cmd.Flags().StringVar(&sort, "sort", "", `sort order, e.g. '{"createdAt":-1}'`)
	cmd.Flags().BoolVar(&one, "one", false, "print only the first match")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <target> [fragment]",
		Short: "Replace a document or set fields on matching documents",
		Long: `With one argument, replace the stored document that has the same _id.
With two, set the fragment's fields on the document with that identifier or
on every document matching the query. The modified count is printed.`,
		Example: `  mongocrud -c users update '{"_id":{"$oid":"64b7f0c2e4b0a1a2b3c4d5e6"},"name":"ada"}'
  mongocrud -c users update '{"active":false}' '{"archived":true}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.crud()
			if err != nil {
				return err
			}

			var (
				target   crud.Target
				fragment crud.Document
			)
			if len(args) == 1 {
				doc, err := decodeDocument(args[0])
				if err != nil {
					return err
				}
				if _, ok := doc["_id"]; !ok {
					return errReplaceNeedsID
				}
				target = crud.Whole(doc)
			} else {
				if target, err = decodeTarget(args[0]); err != nil {
					return err
				}
				if fragment, err = decodeDocument(args[1]); err != nil {
					return err
				}
			}

			n, err := c.Update(cmd.Context(), target, fragment)
			if err != nil {
				return fmt.Errorf("failed to update: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <target>",
		Short: "Delete a document by identifier or every document matching a query",
		Example: `  mongocrud -c users delete 64b7f0c2e4b0a1a2b3c4d5e6
  mongocrud -c users delete '{}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.crud()
			if err != nil {
				return err
			}
			target, err := decodeTarget(args[0])
			if err != nil {
				return err
			}
			n, err := c.Delete(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("failed to delete: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the deployment is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := mongo.Healthcheck(a.connector)(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", mongo.RedactURL(a.connector.Config().URL))
			return nil
		},
	}
}
