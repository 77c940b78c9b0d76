package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// The HTTP shim: the whole backend contract is GET and PUT of one opaque
// JSON document. Handler exposes a Store over HTTP; Client consumes such
// an endpoint as a Store.

// Handler serves GET/PUT of the document backed by the given store.
func Handler(store Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			data, err := store.Load(r.Context())
			if err == ErrNotFound {
				http.Error(w, "no document", http.StatusNotFound)
				return
			}
			if err != nil {
				log.Error().Err(err).Msg("document load failed")
				http.Error(w, "load failed", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
		case http.MethodPut:
			data, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "bad request body", http.StatusBadRequest)
				return
			}
			if err := store.Save(r.Context(), data); err != nil {
				log.Error().Err(err).Msg("document save failed")
				http.Error(w, "save failed", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// Client is a Store backed by a remote shim endpoint.
type Client struct {
	URL    string
	Client *http.Client
}

// NewClient builds a client for the shim at url (e.g.
// http://localhost:8080/api/state).
func NewClient(url string) *Client {
	return &Client{URL: url, Client: &http.Client{}}
}

// Load fetches the whole document.
func (c *Client) Load(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create load request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load failed: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Save uploads the whole document, overwriting whatever is stored.
func (c *Client) Save(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.URL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("save request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save failed: %d", resp.StatusCode)
	}
	return nil
}
