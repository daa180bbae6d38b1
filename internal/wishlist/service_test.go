package wishlist

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/verdantly/verdantly-backend/internal/catalog"
	"github.com/verdantly/verdantly-backend/pkg/db/models"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[string]models.WishlistItem // keyed session|product
	order []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]models.WishlistItem{}}
}

func (r *memoryRepo) key(sessionID, productID string) string {
	return sessionID + "|" + productID
}

func (r *memoryRepo) ListBySession(_ context.Context, sessionID string) ([]models.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WishlistItem
	for _, k := range r.order {
		item, ok := r.items[k]
		if ok && item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepo) Upsert(_ context.Context, sessionID, productID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(sessionID, productID)
	if _, exists := r.items[k]; exists {
		return nil
	}
	r.items[k] = models.WishlistItem{
		ID:        uuid.MustParse(id),
		SessionID: sessionID,
		ProductID: productID,
	}
	r.order = append(r.order, k)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, r.key(sessionID, productID))
	return nil
}

type stubResolver struct {
	products map[string]catalog.ProductView
}

func (s *stubResolver) GetProduct(_ context.Context, id string) (*catalog.ProductView, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func newTestService(t *testing.T) (Service, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	resolver := &stubResolver{products: map[string]catalog.ProductView{
		"peace-lily": {ID: "peace-lily", Name: "Peace Lily", Price: "325", Category: "plants"},
		"jade-plant": {ID: "jade-plant", Name: "Jade Plant", Price: "199", Category: "plants"},
	}}
	svc, err := NewService(repo, resolver)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, repo
}

func TestAddListsSavedProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	items, err := svc.Add(context.Background(), "sess-1", "peace-lily")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Name != "Peace Lily" || items[0].Price != "325" {
		t.Fatalf("catalog fields not mapped: %+v", items[0])
	}
}

func TestAddIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "sess-1", "peace-lily"); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	items, err := svc.Add(ctx, "sess-1", "peace-lily")
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", len(items))
	}
}

func TestAddUnknownProductRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Add(context.Background(), "sess-1", "plastic-flamingo")
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidProduct) {
		t.Fatalf("error = %v, want INVALID_PRODUCT", err)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	items, err := svc.Remove(context.Background(), "sess-1", "peace-lily")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist, got %d items", len(items))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "sess-a", "peace-lily"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add(ctx, "sess-b", "jade-plant"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	a, err := svc.List(ctx, "sess-a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := make([]string, 0, len(a))
	for _, item := range a {
		got = append(got, item.ProductID)
	}
	sort.Strings(got)
	if len(got) != 1 || got[0] != "peace-lily" {
		t.Fatalf("session a sees %v", got)
	}
}

func TestListRequiresSession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.List(context.Background(), " ")
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}
