package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/option"

	"gretastore/pkg/errors"
)

const defaultTokenURL = "https://securetoken.googleapis.com/v1"

// identityToolkit checks passwords through the Identity Toolkit API and
// refreshes sessions through the Secure Token endpoint, which has no Go
// client.
type identityToolkit struct {
	accounts *identitytoolkit.AccountsService
	apiKey   string
	tokenURL string
	http     *http.Client
}

type sessionTokens struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

func newIdentityToolkit(ctx context.Context, apiKey string, opts ...option.ClientOption) (*identityToolkit, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Internal("Failed to create Identity Toolkit client", err)
	}

	return &identityToolkit{
		accounts: svc.Accounts,
		apiKey:   apiKey,
		tokenURL: defaultTokenURL,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (t *identityToolkit) signInWithPassword(ctx context.Context, email, password string) (*sessionTokens, error) {
	resp, err := t.accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if stderrors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
			return nil, errors.Unauthorized("Invalid login credentials", err)
		}
		return nil, errors.Unavailable("Auth service unreachable", err)
	}

	return &sessionTokens{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    parseSeconds(strconv.FormatInt(resp.ExpiresIn, 10)),
	}, nil
}

func (t *identityToolkit) refresh(ctx context.Context, refreshToken string) (*sessionTokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := fmt.Sprintf("%s/token?key=%s", t.tokenURL, url.QueryEscape(t.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, errors.Internal("Failed to build refresh request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		UserID       string `json:"user_id"`
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := t.do(req, &out, "Session expired"); err != nil {
		return nil, err
	}

	return &sessionTokens{
		UID:          out.UserID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    parseSeconds(out.ExpiresIn),
	}, nil
}

// do maps 4xx answers from the Secure Token endpoint to Unauthorized with the given message and anything
// else that fails to BACKEND_UNAVAILABLE.
func (t *identityToolkit) do(req *http.Request, out interface{}, rejected string) error {
	resp, err := t.http.Do(req)
	if err != nil {
		return errors.Unavailable("Auth service unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Unavailable("Failed to read auth response", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		return errors.Unauthorized(rejected, fmt.Errorf("auth: %s", apiErr.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Unavailable("Auth service error", fmt.Errorf("auth: status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Unavailable("Failed to parse auth response", err)
	}
	return nil
}

func parseSeconds(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return time.Hour
	}
	return time.Duration(n) * time.Second
}
