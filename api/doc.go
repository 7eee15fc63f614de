// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package api is a client for the Connect hypermedia API.
//
// The client injects the session's access token into every request URL,
// asks for the parser's media type and classifies responses by status:
//
//   - 500 and above: *ServerError, body kept verbatim
//   - 400 to 499: *ClientError carrying the parsed *entity.Error, empty when
//     the body is not an error document
//   - 204 or a blank body: a nil entity and a nil error
//   - anything else: the parsed *entity.Entity, attached to the client so it
//     can refresh itself and submit its forms
//
// Example:
//
//	client, err := api.NewClient(parser.New())
//	if err != nil {
//		return err
//	}
//	client.SetAccessToken(token.Value)
//	root, err := client.Root(ctx)
//	me, err := root.Entity("currentUser")
package api
