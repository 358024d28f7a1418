package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"colorbook/internal/colors"
)

// DefaultEndpoint is the remote color list the app fetches from.
const DefaultEndpoint = "http://www.colourlovers.com/api/colors/top?format=json&numResults=30"

const maxBodyBytes = 1 << 20

var errEmptyPalette = errors.New("remote palette is empty")

// remoteColor is one element of the remote JSON array.
type remoteColor struct {
	Hex *string `json:"hex"`
}

// fetch performs a single GET against endpoint and decodes the color list.
func fetch(ctx context.Context, client *http.Client, endpoint string) (Palette, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "colorbook")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return decode(body)
}

func decode(body []byte) (Palette, error) {
	var items []remoteColor
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(items) == 0 {
		return nil, errEmptyPalette
	}
	p := make(Palette, 0, len(items))
	for i, item := range items {
		if item.Hex == nil {
			return nil, fmt.Errorf("element %d: missing hex", i)
		}
		c, err := colors.FromHex(*item.Hex)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}
