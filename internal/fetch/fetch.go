// Package fetch resolves the sketches' data files, either from a base URL
// or from a local directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"sketchbook/internal/config"
)

var ErrNotFound = errors.New("fetch: not found")

// Fetcher returns the bytes of a named data file.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Source fetches over HTTP when BaseURL is set and from Dir otherwise.
type Source struct {
	Dir     string
	BaseURL string
	Client  *http.Client
	log     *zap.Logger
}

func New(cfg config.Data, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{Dir: cfg.Dir, BaseURL: cfg.BaseURL, Client: http.DefaultClient, log: log}
}

// Locate returns where name would be read from.
func (s *Source) Locate(name string) (string, error) {
	if s.BaseURL == "" {
		return filepath.Join(s.Dir, filepath.FromSlash(name)), nil
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, name)
	return u.String(), nil
}

func (s *Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	loc, err := s.Locate(name)
	if err != nil {
		return nil, err
	}
	s.log.Debug("fetch", zap.String("name", name), zap.String("location", loc))
	if s.BaseURL == "" {
		return s.readFile(loc)
	}
	return s.get(ctx, loc)
}

func (s *Source) readFile(p string) ([]byte, error) {
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return b, nil
}

func (s *Source) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", u, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("get %s: unexpected status %s", u, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", u, err)
	}
	return b, nil
}
