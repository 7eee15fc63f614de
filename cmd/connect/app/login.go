// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stacklok/connect-client-go/oauth"
	"github.com/stacklok/connect-client-go/recovery"
)

// DefaultLoginTimeout bounds how long login waits for the browser redirect.
const DefaultLoginTimeout = 5 * time.Minute

var (
	// ErrStateMismatch is returned when the callback carries a foreign state.
	ErrStateMismatch = errors.New("authorization state mismatch")

	// ErrLoginTimeout is returned when no callback arrives in time.
	ErrLoginTimeout = errors.New("timed out waiting for authorization")
)

func (a *app) newAuthorizeURLCmd() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "authorize-url",
		Short: "Print the URL that starts the authorization flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if state == "" {
				state = uuid.NewString()
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.consumer().AuthorizationURI(a.cfg.CallbackURL, state))
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "opaque state value (random when empty)")
	return cmd
}

func (a *app) newLoginCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize this machine and store the access token",
		Long: `Login starts a loopback server on the configured callback URL, prints the
authorization URL to open in a browser and waits for the redirect. The code is
exchanged for an access token, the current user is fetched and the resulting
session is stored in the system keyring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", DefaultLoginTimeout, "how long to wait for the browser")
	return cmd
}

func (a *app) login(cmd *cobra.Command, timeout time.Duration) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	callback, err := url.Parse(a.cfg.CallbackURL)
	if err != nil {
		return err
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", callback.Host)
	if err != nil {
		return fmt.Errorf("failed to listen for callback: %w", err)
	}
	// Port 0 picks a free port, which loopback redirect URIs allow.
	callback.Host = ln.Addr().String()
	callbackURI := callback.String()

	state := uuid.NewString()
	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           newCallbackRouter(callback.Path, state, results, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("callback server failed", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	consumer := a.consumer()
	authURL := consumer.AuthorizationURI(callbackURI, state)
	fmt.Fprintf(out, "Open this URL in your browser to authorize:\n\n  %s\n\n", authURL)
	if a.visit != nil {
		go a.visit(ctx, authURL)
	}

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return res.err
		}
		code = res.code
	case <-time.After(timeout):
		return ErrLoginTimeout
	case <-ctx.Done():
		return ctx.Err()
	}

	accessToken, err := consumer.ExchangeCode(ctx, callbackURI, code)
	if err != nil {
		return err
	}

	client, err := a.client(accessToken.Value)
	if err != nil {
		return err
	}
	root, err := client.Root(ctx)
	if err != nil {
		return err
	}
	if root == nil {
		return errors.New("api root returned no content")
	}
	user, err := root.Entity("currentUser")
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("api root does not expose the current user")
	}

	mapper, err := a.cfg.RoleMapper()
	if err != nil {
		return err
	}
	tok, err := mapper.Authenticate(user, accessToken, ProviderKey)
	if err != nil {
		return err
	}
	if err := a.store.Save(a.cfg.Endpoint, tok); err != nil {
		return err
	}

	a.logger.Info("logged in", slog.Any("session", tok))
	fmt.Fprintf(out, "Logged in as %s (roles: %v)\n", tok.User(), tok.Roles())
	return nil
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Delete(a.cfg.Endpoint); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

type callbackResult struct {
	code string
	err  error
}

// newCallbackRouter serves the OAuth redirect. The first request carrying
// the expected state wins; results must have room for one value.
func newCallbackRouter(path, state string, results chan<- callbackResult, logger *slog.Logger) http.Handler {
	if path == "" {
		path = "/"
	}
	r := chi.NewRouter()
	r.Use(recovery.Middleware(logger))
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("state") != state {
			http.Error(w, ErrStateMismatch.Error(), http.StatusBadRequest)
			return
		}

		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = &oauth.ProviderError{Code: q.Get("error"), Message: q.Get("error_description")}
		case q.Get("code") == "":
			res.err = &oauth.ProviderError{Code: oauth.ErrorCodeProvider, Message: "callback did not contain a code"}
		default:
			res.code = q.Get("code")
		}

		select {
		case results <- res:
		default:
			http.Error(w, "authorization already completed", http.StatusConflict)
			return
		}
		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
	})
	return r
}
