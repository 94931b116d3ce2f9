// Package instagram - вход через Instagram: обмен кода на токен и чтение
// профиля и последних публикаций через Graph API.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"collab_backend/internal/config"

	"golang.org/x/oauth2"
)

// Этапы цепочки вызовов. По ним сервис выбирает код ответа.
const (
	StageTokenExchange = "token_exchange"
	StageProfileFetch  = "profile_fetch"
	StageMediaFetch    = "media_fetch"
)

// StageError - ошибка конкретного этапа
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("instagram %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf возвращает этап, на котором произошла ошибка, или ""
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

type Profile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	Biography         string `json:"biography"`
	AccountType       string `json:"account_type"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowersCount    int64  `json:"followers_count"`
	FollowsCount      int64  `json:"follows_count"`
	MediaCount        int64  `json:"media_count"`
}

type Media struct {
	ID            string    `json:"id"`
	MediaType     string    `json:"media_type"`
	Permalink     string    `json:"permalink"`
	LikeCount     int64     `json:"like_count"`
	CommentsCount int64     `json:"comments_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// Averages - средние лайки и комментарии на публикацию
func Averages(media []Media) (avgLikes, avgComments float64) {
	if len(media) == 0 {
		return 0, 0
	}
	var likes, comments int64
	for _, m := range media {
		likes += m.LikeCount
		comments += m.CommentsCount
	}
	n := float64(len(media))
	return float64(likes) / n, float64(comments) / n
}

// Account - результат успешной цепочки вызовов
type Account struct {
	AccessToken string
	Profile     Profile
	Media       []Media
}

type Client struct {
	oauth      *oauth2.Config
	graphURL   string
	mediaLimit int
	httpClient *http.Client
}

func NewClient(cfg config.InstagramConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"instagram_business_basic"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		graphURL:   strings.TrimRight(cfg.GraphURL, "/"),
		mediaLimit: cfg.MediaLimit,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthCodeURL - адрес страницы авторизации Instagram
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Authenticate выполняет обмен кода, чтение профиля и публикаций.
// Ничего не сохраняет: запись в БД делается только после успеха всей цепочки.
func (c *Client) Authenticate(ctx context.Context, code string) (*Account, error) {
	if code == "" {
		return nil, &StageError{Stage: StageTokenExchange, Err: errors.New("authorization code is empty")}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, &StageError{Stage: StageTokenExchange, Err: err}
	}

	profile, err := c.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, &StageError{Stage: StageProfileFetch, Err: err}
	}

	media, err := c.FetchMedia(ctx, token.AccessToken)
	if err != nil {
		return nil, &StageError{Stage: StageMediaFetch, Err: err}
	}

	return &Account{AccessToken: token.AccessToken, Profile: *profile, Media: media}, nil
}

func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	q := url.Values{}
	q.Set("fields", "id,username,name,biography,account_type,profile_picture_url,followers_count,follows_count,media_count")

	var profile Profile
	if err := c.get(ctx, "/me", q, accessToken, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" || profile.Username == "" {
		return nil, errors.New("profile response has no id or username")
	}
	return &profile, nil
}

func (c *Client) FetchMedia(ctx context.Context, accessToken string) ([]Media, error) {
	q := url.Values{}
	q.Set("fields", "id,media_type,permalink,like_count,comments_count,timestamp")
	q.Set("limit", strconv.Itoa(c.mediaLimit))

	var page struct {
		Data []Media `json:"data"`
	}
	if err := c.get(ctx, "/me/media", q, accessToken, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, accessToken string, out any) error {
	q.Set("access_token", accessToken)
	endpoint := c.graphURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("graph api %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
