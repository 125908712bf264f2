package setting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreService reads the website settings from a single Firestore document.
type FirestoreService struct {
	doc *firestore.DocumentRef
}

type websiteDocument struct {
	Name         string `firestore:"name"`
	Description  string `firestore:"description"`
	Keywords     string `firestore:"keywords"`
	XMLNS        string `firestore:"xmlns"`
	CustomHeader string `firestore:"customHeader"`
	CustomFooter string `firestore:"customFooter"`
}

// NewFirestoreService binds the service to docPath (for example "settings/website").
func NewFirestoreService(client *firestore.Client, docPath string) (*FirestoreService, error) {
	if client == nil {
		return nil, errors.New("setting: firestore client is required")
	}
	docPath = strings.Trim(strings.TrimSpace(docPath), "/")
	if docPath == "" {
		return nil, errors.New("setting: firestore document path is required")
	}
	doc := client.Doc(docPath)
	if doc == nil {
		return nil, fmt.Errorf("setting: invalid firestore document path %q", docPath)
	}
	return &FirestoreService{doc: doc}, nil
}

// WebsiteSettings loads the settings document on every call. A missing document
// yields DefaultWebsite.
func (s *FirestoreService) WebsiteSettings(ctx context.Context) (*Website, error) {
	snap, err := s.doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return defaultWebsite(), nil
		}
		return nil, fmt.Errorf("setting: read website document: %w", err)
	}
	var doc websiteDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("setting: decode website document: %w", err)
	}
	w := doc.toWebsite()
	return &w, nil
}

func (d websiteDocument) toWebsite() Website {
	w := Website{
		Name:         strings.TrimSpace(d.Name),
		Description:  d.Description,
		Keywords:     d.Keywords,
		XMLNS:        d.XMLNS,
		CustomHeader: d.CustomHeader,
		CustomFooter: d.CustomFooter,
	}
	if w.Name == "" {
		w.Name = DefaultWebsite().Name
	}
	return w
}
