package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3" // calendar scopes
	"google.golang.org/api/option"

	"github.com/harrisonrobin/goalplan/pkg/config"
)

const (
	// ClientSecretsFile is the downloaded Google API credentials.json file
	// (client_id, client_secret, redirect_uris), expected in the app's
	// config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the user's OAuth token (access + refresh) in the
	// app's config directory.
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the local callback server listens on
	// during the authorization flow.
	LocalhostAuthPort = "6789"
)

// ErrNoToken indicates no cached credential exists and the interactive
// authorization flow has not been run.
var ErrNoToken = errors.New("no cached OAuth token; run `goalplan auth` first")

var calendarScopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// GetOAuthConfig builds an oauth2.Config from the client secrets file,
// forcing a localhost redirect on our callback port.
func GetOAuthConfig() (*oauth2.Config, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}

	secretsPath := filepath.Join(dir, ClientSecretsFile)
	b, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", secretsPath, err)
	}

	cfg, err := google.ConfigFromJSON(b, calendarScopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	parsedURL, parseErr := url.Parse(cfg.RedirectURL)
	switch {
	case parseErr != nil:
		log.Printf("Warning: could not parse RedirectURL '%s': %v. Using it as is.", cfg.RedirectURL, parseErr)
	case parsedURL.Hostname() == "localhost" || parsedURL.Hostname() == "127.0.0.1":
		if parsedURL.Port() != LocalhostAuthPort {
			parsedURL.Host = fmt.Sprintf("%s:%s", parsedURL.Hostname(), LocalhostAuthPort)
			cfg.RedirectURL = parsedURL.String()
		}
	case cfg.RedirectURL == "urn:ietf:wg:oauth:2.0:oob":
		cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	default:
		log.Printf("Warning: RedirectURL in credentials.json is not a localhost callback: %s", cfg.RedirectURL)
	}

	return cfg, nil
}

// TokenPath returns the location of the cached OAuth token.
func TokenPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TokenFile), nil
}

// CachedToken loads the cached token without touching the network.
func CachedToken() (*oauth2.Token, error) {
	path, err := TokenPath()
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, err
	}
	return tok, nil
}

// GetClient returns an authenticated HTTP client. A cached token is used and
// auto-refreshed when expired; with no token at all ErrNoToken is returned
// (interactive authorization is explicit via Authorize).
func GetClient(ctx context.Context) (*http.Client, error) {
	cfg, err := GetOAuthConfig()
	if err != nil {
		return nil, err
	}
	tok, err := CachedToken()
	if err != nil {
		return nil, err
	}
	return cfg.Client(ctx, tok), nil
}

// RefreshToken makes exactly one refresh attempt using the stored refresh
// credential, saves and returns the new token. Callers use this for the
// single refresh-and-retry allowed per provider call.
func RefreshToken(ctx context.Context) (*oauth2.Token, error) {
	cfg, err := GetOAuthConfig()
	if err != nil {
		return nil, err
	}
	tok, err := CachedToken()
	if err != nil {
		return nil, err
	}
	if tok.RefreshToken == "" {
		return nil, ErrNoToken
	}

	// Forget the access token so the source is forced to use the refresh
	// credential.
	stale := &oauth2.Token{RefreshToken: tok.RefreshToken}
	fresh, err := cfg.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = tok.RefreshToken
	}

	path, err := TokenPath()
	if err != nil {
		return nil, err
	}
	if err := saveToken(path, fresh); err != nil {
		log.Printf("Warning: could not save refreshed token: %v", err)
	}
	return fresh, nil
}

// Authorize runs the interactive authorization code flow via a local web
// server and caches the obtained token.
func Authorize(ctx context.Context) error {
	cfg, err := GetOAuthConfig()
	if err != nil {
		return err
	}
	tok, err := getTokenFromWeb(ctx, cfg)
	if err != nil {
		return err
	}
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return saveToken(path, tok)
}

// getTokenFromWeb opens the consent URL and captures the redirect on a local
// HTTP server.
func getTokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Printf("Local server listening on %s for OAuth2 redirect...", cfg.RedirectURL)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// AccessTypeOffline is required so Google returns a refresh token.
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize goalplan:\n%s\n", authURL)
	log.Println("Waiting for authorization code...")

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		server.Shutdown(exchangeCtx)
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		server.Shutdown(context.Background())
		return nil, fmt.Errorf("authorization timed out. Please try again")
	case <-ctx.Done():
		server.Shutdown(context.Background())
		return nil, ctx.Err()
	}
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// RemoveToken deletes the cached token, forcing a fresh authorization.
func RemoveToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetCalendarService builds an authenticated Google Calendar service.
func GetCalendarService(ctx context.Context) (*calendar.Service, error) {
	client, err := GetClient(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google Calendar service: %w", err)
	}
	return srv, nil
}
