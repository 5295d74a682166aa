package docstore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"inandout-portal/internal/config"
	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// Store is the Firestore-backed search backend.
type Store struct {
	client     *firestore.Client
	collection string
}

// New connects to Firestore using the configured project and credentials.
func New(ctx context.Context, cfg config.FirestoreConfig) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Firestore: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "listings"
	}

	return &Store{client: client, collection: collection}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// SearchProperties executes the pushed-down portion of the filter against
// the listings collection. The result may still contain documents that
// violate deferred constraints; the shared post-filter pass removes them.
func (s *Store) SearchProperties(ctx context.Context, f search.Filter) ([]models.Property, error) {
	plan := buildPlan(f)

	q := s.client.Collection(s.collection).Query
	for _, c := range plan.Conditions {
		q = q.Where(c.Path, c.Op, c.Value)
	}

	// The sort key must match the range-filter field, so ordering is
	// always on price.
	dir := firestore.Asc
	if plan.OrderDesc {
		dir = firestore.Desc
	}
	q = q.OrderBy("price", dir).Limit(plan.Limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var properties []models.Property
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore query failed: %w", err)
		}

		var p models.Property
		if err := doc.DataTo(&p); err != nil {
			log.Printf("[Docstore] Warning: skipping malformed document %s: %v", doc.Ref.ID, err)
			continue
		}
		p.ID = doc.Ref.ID
		properties = append(properties, p)
	}

	return properties, nil
}

// IndexProperty writes a listing document, keyed by its ID.
func (s *Store) IndexProperty(ctx context.Context, p *models.Property) error {
	_, err := s.client.Collection(s.collection).Doc(p.ID).Set(ctx, p)
	return err
}

// RemoveProperty deletes a listing document.
func (s *Store) RemoveProperty(ctx context.Context, id string) error {
	_, err := s.client.Collection(s.collection).Doc(id).Delete(ctx)
	return err
}
