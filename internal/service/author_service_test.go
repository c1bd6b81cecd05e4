package service

import (
	"context"
	"errors"
	"testing"

	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
)

// spyRepo records every call so tests can assert which store operations ran.
type spyRepo struct {
	byID      map[int64]domain.Author
	all       []domain.Author
	saveRet   domain.Author
	saveErr   error
	findErr   error
	deleteErr error

	findCalls   []int64
	findAll     int
	saved       []domain.Author
	deleteCalls []int64
}

func (s *spyRepo) FindByID(_ context.Context, id int64) (domain.Author, error) {
	s.findCalls = append(s.findCalls, id)
	if s.findErr != nil {
		return domain.Author{}, s.findErr
	}
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return domain.Author{}, repository.ErrNotFound
}

func (s *spyRepo) FindAll(_ context.Context) ([]domain.Author, error) {
	s.findAll++
	return s.all, nil
}

func (s *spyRepo) Save(_ context.Context, a domain.Author) (domain.Author, error) {
	s.saved = append(s.saved, a)
	if s.saveErr != nil {
		return domain.Author{}, s.saveErr
	}
	if s.saveRet != (domain.Author{}) {
		return s.saveRet, nil
	}
	return a, nil
}

func (s *spyRepo) DeleteByID(_ context.Context, id int64) error {
	s.deleteCalls = append(s.deleteCalls, id)
	return s.deleteErr
}

func createAuthor() domain.Author { return domain.Author{ID: 1, Name: "Author"} }

func createAuthorDTO() domain.AuthorDTO { return domain.AuthorDTO{ID: 1, Name: "Author"} }

func withAuthor() *spyRepo {
	return &spyRepo{byID: map[int64]domain.Author{1: createAuthor()}}
}

func assertNotFound(t *testing.T, err error, id int64) {
	t.Helper()
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != id {
		t.Fatalf("expected NotFoundError{%d}, got %v", id, err)
	}
}

func TestFindByID(t *testing.T) {
	repo := withAuthor()
	s := NewAuthorService(repo)

	got, err := s.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != createAuthorDTO() {
		t.Fatalf("want %+v, got %+v", createAuthorDTO(), got)
	}
	if len(repo.findCalls) != 1 || repo.findCalls[0] != 1 {
		t.Fatalf("FindByID should be called once with 1, got %v", repo.findCalls)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := &spyRepo{}
	s := NewAuthorService(repo)

	_, err := s.FindByID(context.Background(), 80)
	assertNotFound(t, err, 80)
	if err.Error() != "author 80 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if len(repo.findCalls) != 1 || len(repo.saved) != 0 || len(repo.deleteCalls) != 0 {
		t.Fatalf("lookup must not mutate: %+v", repo)
	}
}

func TestFindByID_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	s := NewAuthorService(&spyRepo{findErr: boom})

	_, err := s.FindByID(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
	if errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("store error must not look like not found")
	}
}

func TestFindAll(t *testing.T) {
	repo := &spyRepo{all: []domain.Author{createAuthor()}}
	s := NewAuthorService(repo)

	got, err := s.FindAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0] != createAuthorDTO() {
		t.Fatalf("unexpected result: %+v", got)
	}
	if repo.findAll != 1 {
		t.Fatalf("FindAll should be called once, got %d", repo.findAll)
	}
}

func TestFindAll_PreservesOrder(t *testing.T) {
	repo := &spyRepo{all: []domain.Author{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	got, _ := NewAuthorService(repo).FindAll(context.Background())
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 2 {
		t.Fatalf("store order not preserved: %+v", got)
	}
}

func TestFindAll_Empty(t *testing.T) {
	got, err := NewAuthorService(&spyRepo{}).FindAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestInsert(t *testing.T) {
	repo := &spyRepo{saveRet: createAuthor()}
	s := NewAuthorService(repo)

	got, err := s.Insert(context.Background(), createAuthorDTO())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != createAuthorDTO() {
		t.Fatalf("want %+v, got %+v", createAuthorDTO(), got)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("Save should be called once, got %d", len(repo.saved))
	}
}

func TestInsert_IgnoresCallerID(t *testing.T) {
	repo := &spyRepo{saveRet: domain.Author{ID: 42, Name: "Author"}}
	s := NewAuthorService(repo)

	got, err := s.Insert(context.Background(), domain.AuthorDTO{ID: 7, Name: "Author"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.saved[0].ID != 0 {
		t.Fatalf("caller id leaked into store: %+v", repo.saved[0])
	}
	if got.ID != 42 || got.Name != "Author" {
		t.Fatalf("want store-assigned id 42, got %+v", got)
	}
	if len(repo.findCalls) != 0 {
		t.Fatalf("insert must not look up")
	}
}

func TestInsert_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	_, err := NewAuthorService(&spyRepo{saveErr: boom}).Insert(context.Background(), createAuthorDTO())
	if !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := withAuthor()
	s := NewAuthorService(repo)

	got, err := s.Update(context.Background(), 1, createAuthorDTO())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != createAuthorDTO() {
		t.Fatalf("want %+v, got %+v", createAuthorDTO(), got)
	}
	if len(repo.findCalls) != 1 || repo.findCalls[0] != 1 {
		t.Fatalf("FindByID should be called once with 1, got %v", repo.findCalls)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("Save should be called once, got %d", len(repo.saved))
	}
}

func TestUpdate_ChangesNameKeepsID(t *testing.T) {
	repo := withAuthor()
	s := NewAuthorService(repo)

	got, err := s.Update(context.Background(), 1, domain.AuthorDTO{ID: 99, Name: "Renamed"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != 1 || got.Name != "Renamed" {
		t.Fatalf("want {1 Renamed}, got %+v", got)
	}
	if repo.saved[0] != (domain.Author{ID: 1, Name: "Renamed"}) {
		t.Fatalf("unexpected entity saved: %+v", repo.saved[0])
	}
}

func TestUpdate_InvalidID(t *testing.T) {
	repo := &spyRepo{}
	s := NewAuthorService(repo)

	_, err := s.Update(context.Background(), 80, createAuthorDTO())
	assertNotFound(t, err, 80)
	if len(repo.findCalls) != 1 || repo.findCalls[0] != 80 {
		t.Fatalf("FindByID should be called once with 80, got %v", repo.findCalls)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("Save must never be called, got %d", len(repo.saved))
	}
}

func TestUpdate_RowVanishedBeforeSave(t *testing.T) {
	repo := withAuthor()
	repo.saveErr = repository.ErrNotFound
	_, err := NewAuthorService(repo).Update(context.Background(), 1, createAuthorDTO())
	assertNotFound(t, err, 1)
}

func TestDelete(t *testing.T) {
	repo := withAuthor()
	s := NewAuthorService(repo)

	if err := s.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.deleteCalls) != 1 || repo.deleteCalls[0] != 1 {
		t.Fatalf("DeleteByID should be called exactly once with 1, got %v", repo.deleteCalls)
	}
}

func TestDelete_InvalidID(t *testing.T) {
	repo := &spyRepo{}
	s := NewAuthorService(repo)

	err := s.Delete(context.Background(), 80)
	assertNotFound(t, err, 80)
	if len(repo.deleteCalls) != 0 {
		t.Fatalf("DeleteByID must never be called, got %v", repo.deleteCalls)
	}
}

func TestDelete_StoreError(t *testing.T) {
	boom := errors.New("timeout")
	repo := withAuthor()
	repo.deleteErr = boom
	err := NewAuthorService(repo).Delete(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
}

var _ repository.AuthorRepository = (*spyRepo)(nil)
