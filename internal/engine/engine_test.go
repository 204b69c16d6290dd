package engine

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"levelup/internal/storage"
)

const testUser = "tester"

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(db)
	svc.rng = rand.New(rand.NewPCG(1, 2))
	return svc
}

// setClock pins the service clock to a fixed instant.
func setClock(svc *Service, at time.Time) {
	svc.now = func() time.Time { return at }
}

func seedCatalog(t *testing.T, svc *Service) {
	t.Helper()
	if _, err := storage.SeedTemplates(context.Background(), svc.TemplateRepo()); err != nil {
		t.Fatalf("seed templates: %v", err)
	}
}

func setProfile(t *testing.T, svc *Service, mutate func(p *storage.Profile)) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.ProfileRepo().GetOrCreate(ctx, testUser)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	mutate(p)
	if err := svc.ProfileRepo().Update(ctx, p); err != nil {
		t.Fatalf("update profile: %v", err)
	}
}

func setStats(t *testing.T, svc *Service, mutate func(st *storage.Stats)) {
	t.Helper()
	ctx := context.Background()
	st, err := svc.StatsRepo().GetOrCreate(ctx, testUser)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	mutate(st)
	if err := svc.StatsRepo().Update(ctx, st); err != nil {
		t.Fatalf("update stats: %v", err)
	}
}
