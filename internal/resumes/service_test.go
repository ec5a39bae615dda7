package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := userID + "/" + fileName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return key, int64(len(data)), "text/plain", nil
}

func (s *memStore) SaveWithKey(ctx context.Context, storageKey, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

func (s *memStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	data, ok := s.objects[storageKey]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestCreateRequiresNameAndOwner(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), Resume{Name: "r"}); err == nil {
		t.Fatalf("expected error for missing userID")
	}
	if _, err := svc.Create(context.Background(), Resume{UserID: "user-1"}); err == nil {
		t.Fatalf("expected error for missing name")
	}

	resume, err := svc.Create(context.Background(), Resume{UserID: "user-1", Name: "Main", Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resume.ID == "" || resume.CreatedAt.IsZero() {
		t.Fatalf("resume not initialized: %+v", resume)
	}
}

func TestUploadStoresFileAndExtractedText(t *testing.T) {
	store := newMemStore()
	svc := &Service{Repo: NewMemoryRepo(), Store: store}

	resume, err := svc.Upload(context.Background(), "user-1", "", "resume.txt", []string{"Go", "SQL"},
		strings.NewReader("Built services in Go and SQL."))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resume.Name != "resume.txt" {
		t.Fatalf("name should fall back to file name, got %q", resume.Name)
	}
	if resume.StorageKey == "" || resume.ExtractedTextKey != resume.StorageKey+".extracted.txt" {
		t.Fatalf("storage keys: %q / %q", resume.StorageKey, resume.ExtractedTextKey)
	}

	body, err := store.Open(context.Background(), resume.ExtractedTextKey)
	if err != nil {
		t.Fatalf("extracted text not stored: %v", err)
	}
	defer body.Close()
	text, _ := io.ReadAll(body)
	if !strings.Contains(string(text), "Built services in Go") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestSummaryTextIncludesExtractedText(t *testing.T) {
	store := newMemStore()
	svc := &Service{Repo: NewMemoryRepo(), Store: store}

	resume, err := svc.Upload(context.Background(), "user-1", "Main", "resume.txt", []string{"Go"},
		strings.NewReader("Three years of backend work."))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	text := svc.SummaryText(context.Background(), resume)
	if !strings.Contains(text, "Name: Main") {
		t.Fatalf("summary missing name: %q", text)
	}
	if !strings.Contains(text, "Skills: Go") {
		t.Fatalf("summary missing skills: %q", text)
	}
	if !strings.Contains(text, "Three years of backend work.") {
		t.Fatalf("summary missing extracted text: %q", text)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	resume, err := svc.Create(context.Background(), Resume{UserID: "user-1", Name: "Main"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
