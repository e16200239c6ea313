package service

import (
	"context"
	"errors"
	"fmt"
	"plugga_backend/internal/catalog"
	"plugga_backend/internal/model"
	"plugga_backend/internal/repository"
	"plugga_backend/internal/util"
	"plugga_backend/pkg/logger"
	"plugga_backend/pkg/monitoring"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileService keeps a user's profile and enrolled-course set consistent
// between the record store and the per-user cache. Reads degrade to the cached
// copy when the store is unreachable; writes go cache-first with the remote
// upsert confirmed in the background. No method here propagates a remote
// failure to its caller.
type ProfileService struct {
	Profiles    ProfileStore
	Enrollments EnrollmentStore
	Cache       Cache

	mu        sync.Mutex
	dirty     map[uint]bool
	generated map[string]bool
}

func NewProfileService(profiles ProfileStore, enrollments EnrollmentStore, cache Cache) *ProfileService {
	return &ProfileService{
		Profiles:    profiles,
		Enrollments: enrollments,
		Cache:       cache,
		dirty:       make(map[uint]bool),
		generated:   make(map[string]bool),
	}
}

func profileKey(userID uint) string {
	return fmt.Sprintf("%s%d", util.CacheProfilePrefix, userID)
}

func coursesKey(userID uint) string {
	return fmt.Sprintf("%s%d", util.CacheCoursesPrefix, userID)
}

func dirtyKey(userID uint) string {
	return fmt.Sprintf("%s%d", util.CacheDirtyPrefix, userID)
}

// LoadProfile fetches the profile from the record store, mirroring a hit into
// the cache. A store failure or a missing row falls back to the cached copy:
// an optimistic save may live only in cache until the reconciler lands it, so
// store absence is not authoritative. Absence in both is a nil profile, never
// an error.
func (s *ProfileService) LoadProfile(ctx context.Context, userID uint) *model.UserProfile {
	rctx, cancel := context.WithTimeout(ctx, util.RemoteTimeout)
	defer cancel()

	profile, err := s.Profiles.FindByUserID(rctx, userID)
	if err == nil {
		if cerr := s.Cache.SetJSON(ctx, profileKey(userID), profile); cerr != nil {
			logger.Log.Warn("profile cache mirror failed", zap.Uint("userId", userID), zap.Error(cerr))
		}
		return profile
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("profile load failed, serving cache", zap.Uint("userId", userID), zap.Error(err))
		monitoring.CacheFallbacks.WithLabelValues("profile").Inc()
	}

	var cached model.UserProfile
	if cerr := s.Cache.GetJSON(ctx, profileKey(userID), &cached); cerr != nil {
		return nil
	}
	return &cached
}

// LoadCourses fetches the active enrollments joined with the catalog and maps
// them into course cards, cycling the display palettes by position. A store hit
// overwrites the cached list; a failure serves the cache. The result is never
// an error, at worst an empty list.
func (s *ProfileService) LoadCourses(ctx context.Context, userID uint) []model.CourseView {
	rctx, cancel := context.WithTimeout(ctx, util.RemoteTimeout)
	defer cancel()

	rows, err := s.Enrollments.ListActiveWithCourses(rctx, userID)
	if err != nil {
		logger.Log.Warn("course load failed, serving cache", zap.Uint("userId", userID), zap.Error(err))
		monitoring.CacheFallbacks.WithLabelValues("courses").Inc()

		var cached []model.CourseView
		if cerr := s.Cache.GetJSON(ctx, coursesKey(userID), &cached); cerr != nil {
			return []model.CourseView{}
		}
		return cached
	}

	views := make([]model.CourseView, len(rows))
	for i, row := range rows {
		views[i] = model.CourseView{
			Code:     row.CourseCode,
			Name:     row.Name,
			Subject:  row.Subject,
			Progress: row.Progress,
			Color:    catalog.CardColor(i),
			Icon:     catalog.CardIcon(i),
		}
	}

	if cerr := s.Cache.SetJSON(ctx, coursesKey(userID), views); cerr != nil {
		logger.Log.Warn("course cache mirror failed", zap.Uint("userId", userID), zap.Error(cerr))
	}
	return views
}

// Overview is the merged view the client boots from.
type Overview struct {
	Profile *model.UserProfile `json:"profile"`
	Courses []model.CourseView `json:"courses"`
}

// LoadOverview issues the profile and course loads concurrently, then runs the
// auto-generation guard once both have settled.
func (s *ProfileService) LoadOverview(ctx context.Context, userID uint) *Overview {
	var (
		wg      sync.WaitGroup
		profile *model.UserProfile
		courses []model.CourseView
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		profile = s.LoadProfile(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		courses = s.LoadCourses(ctx, userID)
	}()
	wg.Wait()

	if generated := s.ensureCourses(ctx, userID, profile, len(courses)); generated {
		courses = s.LoadCourses(ctx, userID)
	}

	return &Overview{Profile: profile, Courses: courses}
}

// ensureCourses synthesizes the course set when the profile names a program
// and year but no enrollments exist, so a fresh device never boots into a
// permanently empty course list. It fires at most once per (user, program,
// year) transition.
func (s *ProfileService) ensureCourses(ctx context.Context, userID uint, profile *model.UserProfile, courseCount int) bool {
	if profile == nil || profile.Program == "" || profile.Year == 0 || courseCount > 0 {
		return false
	}

	// An empty course view can also mean the store was unreachable and the
	// cache cold. Confirm against the store so a degraded read never
	// triggers a spurious default assignment over real enrollments.
	if n, err := s.Enrollments.CountActive(ctx, userID); err != nil || n > 0 {
		return false
	}

	key := fmt.Sprintf("%d|%s|%d", userID, profile.Program, profile.Year)
	s.mu.Lock()
	if s.generated[key] {
		s.mu.Unlock()
		return false
	}
	s.generated[key] = true
	s.mu.Unlock()

	logger.Log.Info("auto-generating course list",
		zap.Uint("userId", userID), zap.String("program", profile.Program), zap.Int("year", profile.Year))

	if _, err := s.AssignCoursesForYear(ctx, userID, profile.Program, profile.Year, profile.SelectedCourseCodes()); err != nil {
		logger.Log.Warn("course auto-generation failed", zap.Uint("userId", userID), zap.Error(err))
		return false
	}
	return true
}

// SaveProfile writes optimistically: the cache is committed before the record
// store confirms. The program id is derived from the static name table; an
// unknown program name leaves it unset. A remote failure marks the profile
// dirty for the background reconciler instead of surfacing an error.
func (s *ProfileService) SaveProfile(ctx context.Context, profile *model.UserProfile) {
	if profile.Program != "" {
		if id, ok := catalog.ProgramID(profile.Program); ok {
			profile.ProgramID = id
		} else {
			logger.Log.Warn("unknown program name, leaving program id unset",
				zap.Uint("userId", profile.UserID), zap.String("program", profile.Program))
		}
	}

	if err := s.Cache.SetJSON(ctx, profileKey(profile.UserID), profile); err != nil {
		logger.Log.Warn("profile cache write failed", zap.Uint("userId", profile.UserID), zap.Error(err))
	}

	rctx, cancel := context.WithTimeout(ctx, util.RemoteTimeout)
	defer cancel()

	if err := s.Profiles.Upsert(rctx, profile); err != nil {
		logger.Log.Warn("profile upsert failed, marking dirty", zap.Uint("userId", profile.UserID), zap.Error(err))
		s.markDirty(ctx, profile.UserID)
		return
	}
	s.clearDirty(ctx, profile.UserID)
}

func (s *ProfileService) markDirty(ctx context.Context, userID uint) {
	s.mu.Lock()
	s.dirty[userID] = true
	n := len(s.dirty)
	s.mu.Unlock()

	monitoring.DirtyProfiles.Set(float64(n))
	if err := s.Cache.SetJSON(ctx, dirtyKey(userID), true); err != nil {
		logger.Log.Warn("dirty flag write failed", zap.Uint("userId", userID), zap.Error(err))
	}
}

func (s *ProfileService) clearDirty(ctx context.Context, userID uint) {
	s.mu.Lock()
	wasDirty := s.dirty[userID]
	delete(s.dirty, userID)
	n := len(s.dirty)
	s.mu.Unlock()

	monitoring.DirtyProfiles.Set(float64(n))
	if wasDirty {
		if err := s.Cache.Delete(ctx, dirtyKey(userID)); err != nil {
			logger.Log.Warn("dirty flag clear failed", zap.Uint("userId", userID), zap.Error(err))
		}
	}
}

// DirtyCount reports profiles awaiting remote confirmation.
func (s *ProfileService) DirtyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty)
}

// ReconcileDirty retries the remote upsert for every dirty profile from its
// cached copy. Run periodically by the app's background ticker.
func (s *ProfileService) ReconcileDirty(ctx context.Context) {
	s.mu.Lock()
	ids := make([]uint, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, userID := range ids {
		var cached model.UserProfile
		if err := s.Cache.GetJSON(ctx, profileKey(userID), &cached); err != nil {
			// Only a genuine miss clears the flag. A cache outage is
			// transient and the pending write must survive it.
			if errors.Is(err, repository.ErrCacheMiss) {
				logger.Log.Warn("dirty profile missing from cache", zap.Uint("userId", userID))
				s.clearDirty(ctx, userID)
			} else {
				logger.Log.Warn("dirty profile cache read failed", zap.Uint("userId", userID), zap.Error(err))
			}
			continue
		}

		if err := s.Profiles.Upsert(ctx, &cached); err != nil {
			logger.Log.Warn("dirty profile reconcile failed", zap.Uint("userId", userID), zap.Error(err))
			continue
		}
		logger.Log.Info("dirty profile reconciled", zap.Uint("userId", userID))
		s.clearDirty(ctx, userID)
	}
}

// AssignCoursesForYear expands a program and year into its candidate courses,
// keeps the mandatory ones plus any explicitly selected codes, and replaces
// the user's active enrollment set atomically. This is the sole mutation path
// for enrollment membership.
func (s *ProfileService) AssignCoursesForYear(ctx context.Context, userID uint, program string, year int, selected []string) ([]model.CourseView, error) {
	candidates := catalog.CoursesFor(program, year)
	if len(candidates) == 0 {
		return nil, util.ErrUnknownProgram
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, code := range selected {
		selectedSet[code] = true
	}

	var codes []string
	for _, c := range candidates {
		if c.Mandatory || selected == nil || selectedSet[c.Code] {
			codes = append(codes, c.Code)
		}
	}

	if err := s.Enrollments.ReplaceActive(ctx, userID, codes); err != nil {
		return nil, err
	}

	// An explicit assignment satisfies the guard for this transition.
	s.mu.Lock()
	s.generated[fmt.Sprintf("%d|%s|%d", userID, program, year)] = true
	s.mu.Unlock()

	return s.LoadCourses(ctx, userID), nil
}

// Reset clears the user's cached state and onboarding flag. Profile and
// enrollment rows survive; nothing is hard-deleted.
func (s *ProfileService) Reset(ctx context.Context, userID uint) {
	if err := s.Cache.Delete(ctx,
		profileKey(userID),
		coursesKey(userID),
		fmt.Sprintf("%s%d", util.CacheProgressPrefix, userID),
		dirtyKey(userID),
	); err != nil {
		logger.Log.Warn("cache reset failed", zap.Uint("userId", userID), zap.Error(err))
	}

	rctx, cancel := context.WithTimeout(ctx, util.RemoteTimeout)
	defer cancel()
	if err := s.Profiles.ClearOnboarding(rctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("onboarding reset failed", zap.Uint("userId", userID), zap.Error(err))
	}

	s.mu.Lock()
	prefix := fmt.Sprintf("%d|", userID)
	for key := range s.generated {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.generated, key)
		}
	}
	delete(s.dirty, userID)
	s.mu.Unlock()
}
