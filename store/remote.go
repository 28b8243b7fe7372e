package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"backend/models"
)

// RemoteStore keeps the document as a single base64-encoded blob in a
// REST key-value service (GET {url}/get/{key}, POST {url}/set/{key},
// bearer-token auth). Every remote failure falls back to the local
// file store so a flaky KV service never loses the ability to operate.
type RemoteStore struct {
	baseURL  string
	token    string
	key      string
	client   *http.Client
	fallback *FileStore
}

func NewRemoteStore(baseURL, token, key string, fallback *FileStore) *RemoteStore {
	return &RemoteStore{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		key:      key,
		client:   &http.Client{Timeout: 10 * time.Second},
		fallback: fallback,
	}
}

type kvGetResponse struct {
	Result string `json:"result"`
}

func (s *RemoteStore) Load() (*models.Document, error) {
	doc, err := s.remoteLoad()
	if err != nil {
		log.Printf("remote store read failed, falling back to local file: %v", err)
		return s.fallback.Load()
	}
	return doc, nil
}

func (s *RemoteStore) Save(doc *models.Document) error {
	if err := s.remoteSave(doc); err != nil {
		log.Printf("remote store write failed, falling back to local file: %v", err)
		return s.fallback.Save(doc)
	}
	return nil
}

func (s *RemoteStore) remoteLoad() (*models.Document, error) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/get/"+s.key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv get request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call kv store: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read kv response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kv store error %d: %s", resp.StatusCode, string(body))
	}

	var kv kvGetResponse
	if err := json.Unmarshal(body, &kv); err != nil {
		return nil, fmt.Errorf("failed to parse kv response: %w", err)
	}

	doc := &models.Document{}
	if kv.Result != "" {
		raw, err := base64.StdEncoding.DecodeString(kv.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored document: %w", err)
		}
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("failed to parse stored document: %w", err)
		}
	}
	doc.EnsureDefaults()
	return doc, nil
}

func (s *RemoteStore) remoteSave(doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/set/"+s.key, strings.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create kv set request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call kv store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kv store error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

var _ Store = (*RemoteStore)(nil)
