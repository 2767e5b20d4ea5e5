package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	uploadPath          = "/upload"
	filesPath           = "/get-files"
	clearFilesPath      = "/clear-files"
	kdvExcelPath        = "/generate-kdv-excel"
	kdvWebPath          = "/generate-kdv-web"
	satisWebPath        = "/generate-satis-web"
	requestIDHeader     = "X-Request-ID"
	uploadFieldName     = "files[]"
	maxErrorBodyLogSize = 512
)

// HTTPError is returned when the backend answers with an error status and a
// body that is not the usual JSON envelope.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend responded with %s", e.Status)
}

// Client talks to the reconciliation backend.
type Client struct {
	baseURL *url.URL
	http    *utils.RLHTTPClient
}

func NewClient(baseURL string, httpClient *utils.RLHTTPClient) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", baseURL)
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// Resolve turns a backend link (absolute or relative to the base URL) into an
// absolute URL.
func (c *Client) Resolve(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(r).String(), nil
}

// Upload sends all paths in a single multipart request.
func (c *Client) Upload(ctx context.Context, paths []string) (*UploadResponse, error) {
	body, contentType, err := buildUploadBody(paths)
	if err != nil {
		return nil, err
	}
	out := UploadResponse{}
	if err := c.do(ctx, http.MethodPost, uploadPath, contentType, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Files(ctx context.Context) (*FilesResponse, error) {
	out := FilesResponse{}
	if err := c.do(ctx, http.MethodGet, filesPath, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearFiles(ctx context.Context) (*StatusResponse, error) {
	out := StatusResponse{}
	if err := c.do(ctx, http.MethodPost, clearFilesPath, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateKdvExcel(ctx context.Context) (*ExcelResponse, error) {
	out := ExcelResponse{}
	if err := c.do(ctx, http.MethodPost, kdvExcelPath, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateKdvWeb(ctx context.Context, vkn string) (*WebResponse, error) {
	return c.generateWeb(ctx, kdvWebPath, vkn)
}

func (c *Client) GenerateSatisWeb(ctx context.Context, vkn string) (*WebResponse, error) {
	return c.generateWeb(ctx, satisWebPath, vkn)
}

func (c *Client) generateWeb(ctx context.Context, path, vkn string) (*WebResponse, error) {
	payload, err := json.Marshal(vknRequest{Vkn: vkn})
	if err != nil {
		return nil, err
	}
	out := WebResponse{}
	if err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches a backend link into dest and returns the number of bytes
// written. A partial file is removed on failure.
func (c *Client) Download(ctx context.Context, ref, dest string) (int64, error) {
	target, err := c.Resolve(ref)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	logger := c.prepare(req)

	res, err := c.http.Do(req, func() { logger.Debug("Downloading") })
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		logger.Errorf("backend responded with status %v (%v)", res.StatusCode, res.Status)
		return 0, &HTTPError{StatusCode: res.StatusCode, Status: res.Status}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}
	file, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	written, copyErr := io.Copy(file, res.Body)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dest)
		return 0, fmt.Errorf("could not save %s: %w", dest, err)
	}
	logger.WithField("file", dest).Infof("Saved %d bytes", written)
	return written, nil
}

func (c *Client) prepare(req *http.Request) *log.Entry {
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	return log.WithFields(log.Fields{
		"request_id": requestID,
		"endpoint":   req.URL.Path,
	})
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	target, err := c.Resolve(path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	logger := c.prepare(req)

	res, err := c.http.Do(req, func() { logger.Debugf("%s %s", method, path) })
	if err != nil {
		logger.Errorf("Request failed: %s", err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = res.Body.Close() }()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("could not read %s response: %w", path, err)
	}

	// The backend reports business errors inside a JSON envelope, sometimes
	// with a 4xx/5xx status, so the body wins over the status code.
	if jsonErr := json.Unmarshal(responseBody, out); jsonErr != nil {
		if res.StatusCode >= http.StatusBadRequest {
			logger.Errorf("backend responded with status %v (%v)", res.StatusCode, res.Status)
			return &HTTPError{StatusCode: res.StatusCode, Status: res.Status}
		}
		logger.Errorf("Could not unmarshal json response due to: %s \n Response: \n %s", jsonErr, truncate(responseBody))
		return fmt.Errorf("could not read %s response: %w", path, jsonErr)
	}
	logger.Debugf("Response %v", res.Status)
	return nil
}

func buildUploadBody(paths []string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, path := range paths {
		if err := appendFilePart(writer, path); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func appendFilePart(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	part, err := writer.CreateFormFile(uploadFieldName, filepath.Base(file.Name()))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

func truncate(b []byte) string {
	if len(b) > maxErrorBodyLogSize {
		return string(b[:maxErrorBodyLogSize]) + "..."
	}
	return string(b)
}
