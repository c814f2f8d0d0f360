package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ecocart/storefront/internal/address/domain"
)

// Client queries the OpenStreetMap Nominatim search endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: "ecocart-storefront/1.0",
		http:      &http.Client{},
	}
}

// searchRow mirrors Nominatim's JSON: coordinates arrive as strings.
type searchRow struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	u := fmt.Sprintf("%s/search?format=json&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: status %d", resp.StatusCode)
	}

	var rows []searchRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}

	places := make([]domain.Place, 0, len(rows))
	for _, row := range rows {
		lat, latErr := strconv.ParseFloat(row.Lat, 64)
		lon, lonErr := strconv.ParseFloat(row.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, domain.Place{
			ID:          strconv.FormatInt(row.PlaceID, 10),
			DisplayName: row.DisplayName,
			Lat:         lat,
			Lon:         lon,
		})
	}
	return places, nil
}
