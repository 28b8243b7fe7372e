package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backend/config"
)

const zeppSource = "zepp"

// ZeppData is the single data point the Zepp cloud yields per sync:
// today's step total and burned calories.
type ZeppData struct {
	Date     string `json:"date"`
	Steps    int64  `json:"steps"`
	Calories int64  `json:"calories"`
}

// ZeppService reproduces the undocumented Huami cloud handshake as a
// fixed linear pipeline. Each step fails terminally with an error
// naming the step; there is no retry and no partial credit.
type ZeppService struct {
	phone    string
	password string

	authBase  string // access code + app token host
	loginBase string // login exchange host
	dataBase  string // band data host
	timeURL   string // third-party timestamp service

	client *http.Client
}

func NewZeppService(cfg *config.Config) *ZeppService {
	return &ZeppService{
		phone:     cfg.ZeppPhone,
		password:  cfg.ZeppPassword,
		authBase:  "https://api-user.huami.com",
		loginBase: "https://account.huami.com",
		dataBase:  "https://api-mifit.huami.com",
		timeURL:   "https://api-mifit.huami.com/t.json",
		client: &http.Client{
			Timeout: 15 * time.Second,
			// step 1 answers with a redirect carrying the access code;
			// it must not be followed
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (s *ZeppService) Configured() bool {
	return config.IsConfigured(s.phone) && config.IsConfigured(s.password)
}

// Fetch runs the full handshake and returns today's data point.
func (s *ZeppService) Fetch(ctx context.Context) (*ZeppData, error) {
	access, err := s.requestAccessCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("zepp access code request failed: %w", err)
	}

	loginToken, userID, err := s.exchangeAccessCode(ctx, access)
	if err != nil {
		return nil, fmt.Errorf("zepp login exchange failed: %w", err)
	}

	appToken, err := s.exchangeAppToken(ctx, loginToken)
	if err != nil {
		return nil, fmt.Errorf("zepp app token exchange failed: %w", err)
	}

	data, err := s.fetchBandData(ctx, appToken, userID)
	if err != nil {
		return nil, fmt.Errorf("zepp band data fetch failed: %w", err)
	}
	return data, nil
}

// step 1: phone + password, answered by a redirect whose Location query
// carries the access code.
func (s *ZeppService) requestAccessCode(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", "HuaMi")
	form.Set("password", s.password)
	form.Set("redirect_uri", "https://s3-us-west-2.amazonaws.com/hm-registration/successsignin.html")
	form.Set("token", "access")

	endpoint := fmt.Sprintf("%s/registrations/%s/tokens", s.authBase, url.PathEscape(s.phone))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("no redirect location in response (status %d)", resp.StatusCode)
	}
	redirect, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("unparsable redirect location: %w", err)
	}
	access := redirect.Query().Get("access")
	if access == "" {
		return "", fmt.Errorf("redirect location carries no access code")
	}
	return access, nil
}

type zeppLoginResponse struct {
	TokenInfo struct {
		LoginToken string `json:"login_token"`
		UserID     string `json:"user_id"`
	} `json:"token_info"`
}

// step 2: access code for a login token plus the cloud user id.
func (s *ZeppService) exchangeAccessCode(ctx context.Context, access string) (string, string, error) {
	form := url.Values{}
	form.Set("app_name", "com.xiaomi.hm.health")
	form.Set("country_code", "US")
	form.Set("code", access)
	form.Set("device_model", "android_phone")
	form.Set("grant_type", "access_token")
	form.Set("third_name", "huami_phone")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.loginBase+"/v2/client/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("login API error %d: %s", resp.StatusCode, string(body))
	}

	var lr zeppLoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", "", fmt.Errorf("unparsable login response: %w", err)
	}
	if lr.TokenInfo.LoginToken == "" {
		return "", "", fmt.Errorf("login response carries no login token")
	}
	if lr.TokenInfo.UserID == "" {
		return "", "", fmt.Errorf("login response carries no user id")
	}
	return lr.TokenInfo.LoginToken, lr.TokenInfo.UserID, nil
}

type zeppAppTokenResponse struct {
	TokenInfo struct {
		AppToken string `json:"app_token"`
	} `json:"token_info"`
}

// step 3: login token for the app token used on data endpoints.
func (s *ZeppService) exchangeAppToken(ctx context.Context, loginToken string) (string, error) {
	endpoint := s.authBase + "/v1/client/app_tokens?app_name=com.xiaomi.hm.health&dn=api-user.huami.com&login_token=" + url.QueryEscape(loginToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("app token API error %d: %s", resp.StatusCode, string(body))
	}

	var ar zeppAppTokenResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return "", fmt.Errorf("unparsable app token response: %w", err)
	}
	if ar.TokenInfo.AppToken == "" {
		return "", fmt.Errorf("app token response carries no app token")
	}
	return ar.TokenInfo.AppToken, nil
}

type zeppBandDataResponse struct {
	Data []struct {
		DateTime string `json:"date_time"`
		Summary  string `json:"summary"`
	} `json:"data"`
}

type zeppSummary struct {
	Stp struct {
		Ttl int64 `json:"ttl"`
		Cal int64 `json:"cal"`
	} `json:"stp"`
}

// step 4: fetch the latest band data entry; its summary field is
// base64-embedded JSON with today's step total and calories.
func (s *ZeppService) fetchBandData(ctx context.Context, appToken, userID string) (*ZeppData, error) {
	ts, err := s.fetchTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("timestamp service: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	q := url.Values{}
	q.Set("query_type", "summary")
	q.Set("device_type", "android_phone")
	q.Set("userid", userID)
	q.Set("from_date", today)
	q.Set("to_date", today)
	q.Set("t", ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.dataBase+"/v1/data/band_data.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apptoken", appToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("band data API error %d: %s", resp.StatusCode, string(body))
	}

	var br zeppBandDataResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return nil, fmt.Errorf("unparsable band data response: %w", err)
	}
	if len(br.Data) == 0 {
		return nil, fmt.Errorf("band data response carries no entries")
	}

	last := br.Data[len(br.Data)-1]
	if last.Summary == "" {
		return nil, fmt.Errorf("band data entry carries no summary")
	}
	raw, err := base64.StdEncoding.DecodeString(last.Summary)
	if err != nil {
		return nil, fmt.Errorf("unparsable band data summary: %w", err)
	}
	var summary zeppSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("unparsable band data summary JSON: %w", err)
	}

	date := last.DateTime
	if date == "" {
		date = today
	}
	return &ZeppData{
		Date:     date,
		Steps:    summary.Stp.Ttl,
		Calories: summary.Stp.Cal,
	}, nil
}

func (s *ZeppService) fetchTimestamp(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.timeURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	ts := strings.TrimSpace(string(body))
	if ts == "" {
		return "", fmt.Errorf("timestamp service returned an empty body")
	}
	return ts, nil
}
