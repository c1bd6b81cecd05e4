package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
)

func TestFakeRepo_SaveAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	r := NewAuthorRepository()

	a, _ := r.Save(ctx, domain.Author{Name: "Ursula"})
	b, _ := r.Save(ctx, domain.Author{Name: "Octavia"})
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("want ids 1,2 got %d,%d", a.ID, b.ID)
	}

	if err := r.DeleteByID(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c, _ := r.Save(ctx, domain.Author{Name: "Le Guin"})
	if c.ID != 3 {
		t.Fatalf("deleted ids must not be reused, got %d", c.ID)
	}
}

func TestFakeRepo_SeededItemsAdvanceSequence(t *testing.T) {
	ctx := context.Background()
	r := NewAuthorRepository(WithItems(domain.Author{ID: 10, Name: "seeded"}))

	got, err := r.Save(ctx, domain.Author{Name: "new"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("want id 11, got %d", got.ID)
	}
}

func TestFakeRepo_UpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	r := NewAuthorRepository(WithItems(domain.Author{ID: 1, Name: "old"}))

	if _, err := r.Save(ctx, domain.Author{ID: 1, Name: "new"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := r.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "new" || r.Len() != 1 {
		t.Fatalf("update mismatch: %+v len=%d", got, r.Len())
	}
}

func TestFakeRepo_FindAllOrderedByID(t *testing.T) {
	r := NewAuthorRepository(WithItems(
		domain.Author{ID: 3, Name: "c"},
		domain.Author{ID: 1, Name: "a"},
		domain.Author{ID: 2, Name: "b"},
	))
	got, err := r.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(got) != 3 || got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestFakeRepo_EmptyFindAllIsNonNil(t *testing.T) {
	got, err := NewAuthorRepository().FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestFakeRepo_MissingID(t *testing.T) {
	ctx := context.Background()
	r := NewAuthorRepository()
	if _, err := r.FindByID(ctx, 80); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := r.DeleteByID(ctx, 80); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
