package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/session"
)

const defaultTimeout = 12 * time.Second

// HTTPClient talks JSON to the REST API. Authenticated calls carry the
// token from the TokenStore; when the server rejects it and a refresh token
// is known, the client rotates the pair once and retries.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu           sync.Mutex
	refreshToken string
}

func NewHTTPClient(baseURL string, tokens TokenStore) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

// SetRefreshToken remembers the refresh token used for automatic rotation.
func (c *HTTPClient) SetRefreshToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshToken = token
}

func (c *HTTPClient) currentRefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}

type request struct {
	method      string
	path        string
	contentType string
	body        []byte
	auth        bool
	// token overrides the stored token and disables rotation.
	token string
}

func jsonRequest(method, path string, in any, auth bool) (request, error) {
	r := request{method: method, path: path, auth: auth}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return r, err
		}
		r.body = b
		r.contentType = "application/json"
	}
	return r, nil
}

func (c *HTTPClient) send(ctx context.Context, r request, token string) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.auth && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// do performs r and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	token := r.token
	if r.auth && token == "" && c.tokens != nil {
		token, _ = c.tokens.Token()
	}

	resp, err := c.send(ctx, r, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && r.auth && r.token == "" && c.tokens != nil && c.currentRefreshToken() != "" {
		_ = resp.Body.Close()
		if err := c.rotate(ctx); err != nil {
			return err
		}
		token, _ = c.tokens.Token()
		if resp, err = c.send(ctx, r, token); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) rotate(ctx context.Context) error {
	pair, err := c.Refresh(ctx, c.currentRefreshToken())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.SetRefreshToken("")
		}
		return err
	}
	if c.tokens != nil {
		if err := c.tokens.SetToken(pair.AccessToken); err != nil {
			return err
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &body); err != nil {
		body.Detail = strings.TrimSpace(string(b))
	}
	return newError(resp.StatusCode, body.Detail)
}

func (c *HTTPClient) Signup(ctx context.Context, in SignupRequest) (int64, error) {
	r, err := jsonRequest(http.MethodPost, "/signup", in, false)
	if err != nil {
		return 0, err
	}
	var out struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login uses the OAuth2 password form. The returned refresh token is also
// kept for automatic rotation.
func (c *HTTPClient) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	form := url.Values{"username": {login}, "password": {password}}
	r := request{
		method:      http.MethodPost,
		path:        "/token",
		contentType: "application/x-www-form-urlencoded",
		body:        []byte(form.Encode()),
	}

	var pair TokenPair
	if err := c.do(ctx, r, &pair); err != nil {
		return nil, err
	}
	c.SetRefreshToken(pair.RefreshToken)
	return &pair, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	r, err := jsonRequest(http.MethodPost, "/token/refresh", map[string]string{"refresh_token": refreshToken}, false)
	if err != nil {
		return nil, err
	}
	var pair TokenPair
	if err := c.do(ctx, r, &pair); err != nil {
		return nil, err
	}
	c.SetRefreshToken(pair.RefreshToken)
	return &pair, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*session.User, error) {
	var u session.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/me", auth: true}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// MeWithToken loads the profile behind accessToken without reading or
// writing the token store. Login uses it to check a fresh token before the
// session switches to it.
func (c *HTTPClient) MeWithToken(ctx context.Context, accessToken string) (*session.User, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}
	var u session.User
	r := request{method: http.MethodGet, path: "/users/me", auth: true, token: accessToken}
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Characters(ctx context.Context, query, relationship string) ([]Character, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if relationship != "" {
		q.Set("relationship", relationship)
	}
	path := "/characters"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []Character
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Character(ctx context.Context, id int64) (*CharacterDetails, error) {
	var d CharacterDetails
	if err := c.do(ctx, request{method: http.MethodGet, path: "/characters/" + strconv.FormatInt(id, 10)}, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Journeys(ctx context.Context) ([]Journey, error) {
	var list []Journey
	if err := c.do(ctx, request{method: http.MethodGet, path: "/journeys", auth: true}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) AddJourney(ctx context.Context, in AddJourneyRequest) (int64, error) {
	r, err := jsonRequest(http.MethodPost, "/add_journey", in, true)
	if err != nil {
		return 0, err
	}
	var out struct {
		JourneyID int64 `json:"journey_id"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return 0, err
	}
	return out.JourneyID, nil
}

func (c *HTTPClient) Messages(ctx context.Context) ([]Message, error) {
	var list []Message
	if err := c.do(ctx, request{method: http.MethodGet, path: "/messages", auth: true}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, toUserID int64, body string) (int64, error) {
	r, err := jsonRequest(http.MethodPost, "/messages", map[string]any{"to_user_id": toUserID, "message": body}, true)
	if err != nil {
		return 0, err
	}
	var out struct {
		MessageID int64 `json:"message_id"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return 0, err
	}
	return out.MessageID, nil
}

func (c *HTTPClient) PortraitUploadURL(ctx context.Context, characterID int64, contentType string) (*PortraitUpload, error) {
	r, err := jsonRequest(http.MethodPost, portraitPath(characterID), map[string]string{"content_type": contentType}, true)
	if err != nil {
		return nil, err
	}
	var out PortraitUpload
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PortraitURL(ctx context.Context, characterID int64) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: portraitPath(characterID)}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func portraitPath(id int64) string {
	return "/characters/" + strconv.FormatInt(id, 10) + "/portrait"
}
