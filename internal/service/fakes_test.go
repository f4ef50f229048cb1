package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type stubCacheRepo struct {
	store   map[string][]byte
	deleted []string
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	s.deleted = append(s.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	removed := 0
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
			removed++
		}
	}
	return removed, nil
}

func newStubCache() (*CacheService, *stubCacheRepo) {
	repo := &stubCacheRepo{}
	return NewCacheService(repo, nil, time.Minute, nil, true), repo
}

type fakeProfileStore struct {
	profiles map[string]*models.Profile
	setup    map[string][]models.SetupActivity
	err      error
	deleted  []string
}

func newFakeProfileStore(profiles ...*models.Profile) *fakeProfileStore {
	store := &fakeProfileStore{profiles: map[string]*models.Profile{}, setup: map[string][]models.SetupActivity{}}
	for _, p := range profiles {
		store.profiles[p.UID] = p
	}
	return store
}

func (f *fakeProfileStore) FindByUID(_ context.Context, uid string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileStore) Upsert(_ context.Context, profile *models.Profile, setup []models.SetupActivity) error {
	clone := *profile
	f.profiles[profile.UID] = &clone
	if setup != nil {
		f.setup[profile.UID] = setup
	}
	return nil
}

func (f *fakeProfileStore) ListSetupActivities(_ context.Context, uid string) ([]models.SetupActivity, error) {
	return f.setup[uid], nil
}

func (f *fakeProfileStore) UpdateTarget(_ context.Context, uid string, target models.Target) error {
	p, ok := f.profiles[uid]
	if !ok {
		return sql.ErrNoRows
	}
	p.Target = target
	return nil
}

func (f *fakeProfileStore) UpdateCategoryTargets(_ context.Context, uid string, targets models.CategoryTargets) error {
	p, ok := f.profiles[uid]
	if !ok {
		return sql.ErrNoRows
	}
	p.CategoryTargets = targets
	return nil
}

func (f *fakeProfileStore) UpdateSharedWith(_ context.Context, uid string, emails []string) error {
	p, ok := f.profiles[uid]
	if !ok {
		return sql.ErrNoRows
	}
	p.SharedWith = emails
	return nil
}

func (f *fakeProfileStore) MarkComplete(_ context.Context, uid string) error {
	p, ok := f.profiles[uid]
	if !ok {
		return sql.ErrNoRows
	}
	p.ProfileComplete = true
	return nil
}

func (f *fakeProfileStore) Delete(_ context.Context, uid string) error {
	if _, ok := f.profiles[uid]; !ok {
		return sql.ErrNoRows
	}
	delete(f.profiles, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakePracticeLogStore struct {
	logs []models.PracticeLogEntry
	err  error
}

func (f *fakePracticeLogStore) Create(_ context.Context, entry *models.PracticeLogEntry) error {
	if f.err != nil {
		return f.err
	}
	entry.Seq = int64(len(f.logs) + 1)
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakePracticeLogStore) ListByUID(_ context.Context, uid string) ([]models.PracticeLogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.PracticeLogEntry
	for _, log := range f.logs {
		if log.UID == uid {
			out = append(out, log)
		}
	}
	return out, nil
}

type fakeAttemptStore struct {
	attempts []models.OfficialAttempt
}

func (f *fakeAttemptStore) Create(_ context.Context, attempt *models.OfficialAttempt) error {
	attempt.ID = "attempt-" + string(rune('a'+len(f.attempts)))
	attempt.Seq = int64(len(f.attempts) + 1)
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptStore) Update(_ context.Context, attempt *models.OfficialAttempt) error {
	for i := range f.attempts {
		if f.attempts[i].ID == attempt.ID && f.attempts[i].UID == attempt.UID {
			f.attempts[i] = *attempt
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeAttemptStore) FindByID(_ context.Context, uid, id string) (*models.OfficialAttempt, error) {
	for _, a := range f.attempts {
		if a.ID == id && a.UID == uid {
			clone := a
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttemptStore) ListByUID(_ context.Context, uid string) ([]models.OfficialAttempt, error) {
	var out []models.OfficialAttempt
	for _, a := range f.attempts {
		if a.UID == uid {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeExtracurricularStore struct {
	entries []models.Extracurricular
}

func (f *fakeExtracurricularStore) Create(_ context.Context, entry *models.Extracurricular) error {
	entry.ID = "ec-" + string(rune('a'+len(f.entries)))
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeExtracurricularStore) Update(_ context.Context, entry *models.Extracurricular) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID && f.entries[i].UID == entry.UID {
			f.entries[i] = *entry
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeExtracurricularStore) Delete(_ context.Context, uid, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UID == uid {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeExtracurricularStore) FindByID(_ context.Context, uid, id string) (*models.Extracurricular, error) {
	for _, e := range f.entries {
		if e.ID == id && e.UID == uid {
			clone := e
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeExtracurricularStore) ListByUID(_ context.Context, uid string) ([]models.Extracurricular, error) {
	var out []models.Extracurricular
	for _, e := range f.entries {
		if e.UID == uid {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCycleStore struct {
	cycles []models.ApplicationCycle
}

func (f *fakeCycleStore) Create(_ context.Context, cycle *models.ApplicationCycle) error {
	cycle.ID = "cycle-" + string(rune('a'+len(f.cycles)))
	f.cycles = append(f.cycles, *cycle)
	return nil
}

func (f *fakeCycleStore) ListByUID(_ context.Context, uid string) ([]models.ApplicationCycle, error) {
	var out []models.ApplicationCycle
	for _, c := range f.cycles {
		if c.UID == uid {
			out = append(out, c)
		}
	}
	return out, nil
}

type serviceFixture struct {
	profiles         *fakeProfileStore
	logs             *fakePracticeLogStore
	attempts         *fakeAttemptStore
	extracurriculars *fakeExtracurricularStore
	cycles           *fakeCycleStore
	cache            *CacheService
	cacheRepo        *stubCacheRepo
	profileService   *ProfileService
}

func newServiceFixture(profiles ...*models.Profile) *serviceFixture {
	cache, repo := newStubCache()
	f := &serviceFixture{
		profiles:         newFakeProfileStore(profiles...),
		logs:             &fakePracticeLogStore{},
		attempts:         &fakeAttemptStore{},
		extracurriculars: &fakeExtracurricularStore{},
		cycles:           &fakeCycleStore{},
		cache:            cache,
		cacheRepo:        repo,
	}
	f.profileService = NewProfileService(ProfileServiceParams{
		Profiles:         f.profiles,
		PracticeLogs:     f.logs,
		Attempts:         f.attempts,
		Extracurriculars: f.extracurriculars,
		Cycles:           f.cycles,
		Cache:            cache,
	})
	return f
}

func testProfile(uid string) *models.Profile {
	return &models.Profile{UID: uid, Email: uid + "@example.com", Name: "Test " + uid}
}

func intPtr(v int) *int { return &v }
