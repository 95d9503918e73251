package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"
)

const authorizeURL = "https://api.backblazeb2.com/b2api/v2/b2_authorize_account"

// B2Store talks to the Backblaze B2 native API. Authorization tokens are
// cached and refreshed when the API answers 401.
type B2Store struct {
	keyID      string
	appKey     string
	bucketID   string
	bucketName string
	httpClient *http.Client

	mu          sync.Mutex
	apiURL      string
	downloadURL string
	authToken   string
}

func NewB2Store(keyID, appKey, bucketID, bucketName string) *B2Store {
	return &B2Store{
		keyID:      keyID,
		appKey:     appKey,
		bucketID:   bucketID,
		bucketName: bucketName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type b2AuthResponse struct {
	APIURL             string `json:"apiUrl"`
	DownloadURL        string `json:"downloadUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}

type b2UploadURLResponse struct {
	UploadURL          string `json:"uploadUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}

type b2File struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

type b2ListFilesResponse struct {
	Files []b2File `json:"files"`
}

func (s *B2Store) authorize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authorizeURL, nil)
	if err != nil {
		return err
	}
	creds := base64.StdEncoding.EncodeToString([]byte(s.keyID + ":" + s.appKey))
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("authorize account: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authorize account: status %d", resp.StatusCode)
	}

	var auth b2AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("authorize account: %w", err)
	}

	s.mu.Lock()
	s.apiURL = auth.APIURL
	s.downloadURL = auth.DownloadURL
	s.authToken = auth.AuthorizationToken
	s.mu.Unlock()
	return nil
}

func (s *B2Store) session(ctx context.Context) (apiURL, downloadURL, token string, err error) {
	s.mu.Lock()
	apiURL, downloadURL, token = s.apiURL, s.downloadURL, s.authToken
	s.mu.Unlock()
	if token != "" {
		return apiURL, downloadURL, token, nil
	}
	if err := s.authorize(ctx); err != nil {
		return "", "", "", err
	}
	s.mu.Lock()
	apiURL, downloadURL, token = s.apiURL, s.downloadURL, s.authToken
	s.mu.Unlock()
	return apiURL, downloadURL, token, nil
}

// apiCall POSTs a JSON body to a b2api endpoint, re-authorizing once on 401.
func (s *B2Store) apiCall(ctx context.Context, endpoint string, body any, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		apiURL, _, token, err := s.session(ctx)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/b2api/v2/"+endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s: %w", endpoint, err)
		}
		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			s.mu.Lock()
			s.authToken = ""
			s.mu.Unlock()
			continue
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
		}
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return fmt.Errorf("%s: unauthorized after refresh", endpoint)
}

// Upload stores the file under <owner>/<trip>/<timestamp>-<name> and returns
// its public download URL.
func (s *B2Store) Upload(ctx context.Context, data []byte, fileName string, meta UploadMeta) (string, error) {
	var uploadURL b2UploadURLResponse
	if err := s.apiCall(ctx, "b2_get_upload_url", map[string]string{"bucketId": s.bucketID}, &uploadURL); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	remoteName := remotePath(meta, fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	sum := sha1.Sum(data)
	req.Header.Set("Authorization", uploadURL.AuthorizationToken)
	req.Header.Set("X-Bz-File-Name", url.PathEscape(remoteName))
	req.Header.Set("Content-Type", "b2/x-auto")
	req.Header.Set("X-Bz-Content-Sha1", hex.EncodeToString(sum[:]))
	req.ContentLength = int64(len(data))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upload status %d", ErrUpload, resp.StatusCode)
	}

	_, downloadURL, _, err := s.session(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return downloadURL + "/file/" + s.bucketName + "/" + remoteName, nil
}

// DeleteByURL resolves the object named in a previously returned URL and
// deletes its latest version.
func (s *B2Store) DeleteByURL(ctx context.Context, fileURL string) error {
	marker := "/file/" + s.bucketName + "/"
	idx := strings.Index(fileURL, marker)
	if idx < 0 {
		return fmt.Errorf("%w: unrecognized file url %q", ErrUpload, fileURL)
	}
	fileName := fileURL[idx+len(marker):]

	var listing b2ListFilesResponse
	err := s.apiCall(ctx, "b2_list_file_names", map[string]any{
		"bucketId":      s.bucketID,
		"startFileName": fileName,
		"maxFileCount":  1,
		"prefix":        fileName,
	}, &listing)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if len(listing.Files) == 0 || listing.Files[0].FileName != fileName {
		return fmt.Errorf("%w: remote object %q not found", ErrUpload, fileName)
	}

	err = s.apiCall(ctx, "b2_delete_file_version", map[string]string{
		"fileId":   listing.Files[0].FileID,
		"fileName": fileName,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return nil
}

func remotePath(meta UploadMeta, fileName string) string {
	owner := slug(meta.OwnerName)
	if owner == "" {
		owner = meta.OwnerID
	}
	trip := slug(meta.TripName)
	if trip == "" {
		trip = meta.TripID
	}
	stamped := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), path.Base(fileName))
	return owner + "/" + trip + "/" + stamped
}

// slug keeps remote path segments to lowercase ASCII letters, digits and
// hyphens.
func slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
