// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/connect-client-go/entity"
)

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [url]",
		Short: "Fetch an API resource, or the API root when no URL is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.authenticatedClient()
			if err != nil {
				return err
			}
			var e *entity.Entity
			if len(args) == 0 {
				e, err = client.Root(cmd.Context())
			} else {
				e, err = client.Get(cmd.Context(), args[0], nil)
			}
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), e)
		},
	}
}

func (a *app) newSubmitCmd() *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:     "submit <url> <form-id>",
		Short:   "Fetch a resource, update its properties and submit one of its forms",
		Example: `  connect submit /api/users/abc profile --set city=Lille --set company=Acme`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.authenticatedClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			e, err := client.Get(ctx, args[0], nil)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("%s: %w", args[0], entity.ErrNoContent)
			}
			for _, kv := range values {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --set %q, expected name=value", kv)
				}
				if err := e.Set(name, value); err != nil {
					return err
				}
			}
			result, err := e.Submit(ctx, args[1], nil)
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringArrayVar(&values, "set", nil, "property to change before submitting, as name=value")
	return cmd
}

// printEntity writes e as indented JSON, listing its form identifiers.
func printEntity(w io.Writer, e *entity.Entity) error {
	if e == nil {
		_, err := fmt.Fprintln(w, "(no content)")
		return err
	}
	doc := e.ToMap()
	if forms := e.Forms(); len(forms) > 0 {
		doc["forms"] = slices.Sorted(maps.Keys(forms))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
