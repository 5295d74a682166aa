package textsearch

import (
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"inandout-portal/internal/models"
)

// Client wraps the Meilisearch index that serves free-text listing search.
type Client struct {
	client *meilisearch.Client
	index  string
}

func NewClient(host, apiKey string) *Client {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &Client{
		client: client,
		index:  "listings",
	}
}

// InitIndex creates the listings index and configures its attributes.
func (c *Client) InitIndex() error {
	_, err := c.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        c.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = c.client.Index(c.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"city",
		"zone",
		"address",
	})
	if err != nil {
		return err
	}

	_, err = c.client.Index(c.index).UpdateFilterableAttributes(&[]string{
		"id",
		"price",
		"propertyType",
		"city",
		"country",
		"features",
		"isActive",
	})
	if err != nil {
		return err
	}

	_, err = c.client.Index(c.index).UpdateSortableAttributes(&[]string{
		"price",
		"createdAt",
	})
	return err
}

// IndexProperty indexes a single listing
func (c *Client) IndexProperty(property *models.Property) error {
	_, err := c.client.Index(c.index).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple listings
func (c *Client) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := c.client.Index(c.index).AddDocuments(properties)
	return err
}

// RemoveProperties removes listings from the index by ID.
func (c *Client) RemoveProperties(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.client.Index(c.index).DeleteDocuments(ids)
	return err
}

// Search performs a free-text search over active listings.
func (c *Client) Search(query string, limit int64) ([]models.Property, error) {
	return c.FilterSearch(FilterParams{Query: query, Limit: limit})
}

// FilterParams narrows a free-text search with optional attribute filters.
type FilterParams struct {
	Query        string
	Limit        int64
	City         string
	PropertyType string
	MinPrice     *int
	MaxPrice     *int
}

// FilterSearch performs a free-text search constrained by the given
// attribute filters. Inactive listings are always excluded.
func (c *Client) FilterSearch(params FilterParams) ([]models.Property, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filters := []string{"isActive = true"}
	if params.City != "" {
		filters = append(filters, fmt.Sprintf("city = %q", params.City))
	}
	if params.PropertyType != "" {
		filters = append(filters, fmt.Sprintf("propertyType = %q", params.PropertyType))
	}
	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price >= %d", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price <= %d", *params.MaxPrice))
	}

	searchRes, err := c.client.Index(c.index).Search(params.Query, &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: filters,
	})
	if err != nil {
		return nil, err
	}

	// Convert hits back through JSON into Property structs
	properties := make([]models.Property, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
