package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/source"
)

// OAuthConfig locates the user credentials.
type OAuthConfig struct {
	DocumentID string
	// ClientFile is the OAuth client secret downloaded from the cloud console.
	ClientFile string
	// TokenFile caches the authorized user token between runs.
	TokenFile string
	// Interactive allows a browser consent flow when no token is cached.
	Interactive bool
	// Prompt receives the consent URL; defaults to os.Stderr.
	Prompt io.Writer
}

// OAuthProvider reads worksheets on behalf of the signed-in user.
type OAuthProvider struct {
	cfg     OAuthConfig
	logger  *slog.Logger
	options []option.ClientOption
}

var _ source.Provider = (*OAuthProvider)(nil)

// NewOAuthProvider wires user credentials; extra options go to the Sheets client.
func NewOAuthProvider(cfg OAuthConfig, log *slog.Logger, opts ...option.ClientOption) *OAuthProvider {
	if cfg.Prompt == nil {
		cfg.Prompt = os.Stderr
	}
	return &OAuthProvider{cfg: cfg, logger: log, options: opts}
}

// Name identifies the provider inside the registry.
func (p *OAuthProvider) Name() string {
	return "oauth"
}

// Fetch reads the worksheet with the cached (or freshly authorized) token.
func (p *OAuthProvider) Fetch(ctx context.Context, sheet string) (*domain.RecordSet, error) {
	conf, token, err := p.credentials(ctx)
	if err != nil {
		return nil, err
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(conf.Client(ctx, token))}, p.options...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	return readWorksheet(ctx, svc, p.cfg.DocumentID, sheet)
}

func (p *OAuthProvider) credentials(ctx context.Context) (*oauth2.Config, *oauth2.Token, error) {
	user, err := loadAuthorizedUser(p.cfg.TokenFile)
	if err == nil {
		conf, token := user.oauth2()
		return conf, token, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, err
	}
	if !p.cfg.Interactive {
		return nil, nil, fmt.Errorf("no cached user token at %s", p.cfg.TokenFile)
	}
	return p.authorize(ctx)
}

// authorize runs the loopback consent flow and caches the resulting token.
func (p *OAuthProvider) authorize(ctx context.Context) (*oauth2.Config, *oauth2.Token, error) {
	raw, err := os.ReadFile(p.cfg.ClientFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read oauth client file: %w", err)
	}

	conf, err := google.ConfigFromJSON(raw, readonlyScope)
	if err != nil {
		return nil, nil, fmt.Errorf("parse oauth client file: %w", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, nil, fmt.Errorf("listen for oauth callback: %w", err)
	}
	conf.RedirectURL = "http://" + listener.Addr().String() + "/"

	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	fmt.Fprintf(p.cfg.Prompt, "Open this URL in a browser to grant read access to the CV workbook:\n\n%s\n\n", authURL)
	if p.logger != nil {
		p.logger.Info("waiting for oauth consent", "redirect", conf.RedirectURL)
	}

	code, err := waitForCode(ctx, listener, state)
	if err != nil {
		return nil, nil, err
	}

	token, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, nil, fmt.Errorf("exchange oauth code: %w", err)
	}

	if err := saveAuthorizedUser(p.cfg.TokenFile, conf, token); err != nil && p.logger != nil {
		p.logger.Warn("could not cache user token", "path", p.cfg.TokenFile, "error", err)
	}
	return conf, token, nil
}

// waitForCode serves the redirect target until the browser delivers a code.
func waitForCode(ctx context.Context, listener net.Listener, expectedState string) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != expectedState {
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}
		if reason := q.Get("error"); reason != "" {
			http.Error(w, "Authorization failed: "+reason, http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth consent failed: %s", reason)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code received", http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte("Authorization complete. You can close this window."))
		codeCh <- code
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer server.Close()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// authorizedUser mirrors the token cache written by gspread, so both tools
// can share ~/.config/gspread/authorized_user.json.
type authorizedUser struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

func loadAuthorizedUser(path string) (authorizedUser, error) {
	var user authorizedUser
	if path == "" {
		return user, fmt.Errorf("user token file: %w", os.ErrNotExist)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return user, fmt.Errorf("read user token: %w", err)
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return user, fmt.Errorf("parse user token: %w", err)
	}
	if user.RefreshToken == "" && user.Token == "" {
		return user, fmt.Errorf("user token %s holds no credentials", path)
	}
	return user, nil
}

func (u authorizedUser) oauth2() (*oauth2.Config, *oauth2.Token) {
	endpoint := google.Endpoint
	if u.TokenURI != "" {
		endpoint.TokenURL = u.TokenURI
	}

	conf := &oauth2.Config{
		ClientID:     u.ClientID,
		ClientSecret: u.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{readonlyScope},
	}

	token := &oauth2.Token{AccessToken: u.Token, RefreshToken: u.RefreshToken, TokenType: "Bearer"}
	if expiry, err := parseExpiry(u.Expiry); err == nil {
		token.Expiry = expiry
	} else {
		// unknown expiry: refresh before first use
		token.AccessToken = ""
	}
	return conf, token
}

func parseExpiry(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised expiry %q", value)
}

func saveAuthorizedUser(path string, conf *oauth2.Config, token *oauth2.Token) error {
	if path == "" {
		return fmt.Errorf("no token file configured")
	}

	user := authorizedUser{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
		Expiry:       token.Expiry.UTC().Format(time.RFC3339Nano),
	}

	raw, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
