package service

import (
	"context"
	"encoding/json"
	"plugga_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService() (*ProfileService, *fakeProfileStore, *fakeEnrollmentStore, *fakeCache) {
	profiles := newFakeProfileStore()
	enrollments := newFakeEnrollmentStore()
	cache := newFakeCache()
	return NewProfileService(profiles, enrollments, cache), profiles, enrollments, cache
}

func TestLoadProfileMirrorsHitIntoCache(t *testing.T) {
	svc, profiles, _, cache := newProfileService()
	profiles.profiles[1] = &model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 2}

	got := svc.LoadProfile(context.Background(), 1)
	require.NotNil(t, got)
	assert.Equal(t, "Teknikprogrammet", got.Program)

	var cached model.UserProfile
	require.NoError(t, cache.GetJSON(context.Background(), "@profile_1", &cached))
	assert.Equal(t, got.Program, cached.Program)
}

func TestLoadProfileAbsentIsNilNotError(t *testing.T) {
	svc, _, _, _ := newProfileService()
	assert.Nil(t, svc.LoadProfile(context.Background(), 42))
}

func TestLoadProfileAbsentInStoreServesCachedSave(t *testing.T) {
	svc, profiles, _, _ := newProfileService()

	// Save lands only in cache while the store is down.
	profiles.fail = true
	svc.SaveProfile(context.Background(), &model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 2})
	require.Equal(t, 1, svc.DirtyCount())

	// Store recovers but the reconciler has not ticked yet, so the row is
	// still absent. The optimistic copy must not vanish.
	profiles.fail = false
	got := svc.LoadProfile(context.Background(), 1)
	require.NotNil(t, got)
	assert.Equal(t, "Teknikprogrammet", got.Program)
}

func TestLoadProfileFallsBackToCache(t *testing.T) {
	svc, profiles, _, cache := newProfileService()
	require.NoError(t, cache.SetJSON(context.Background(), "@profile_1",
		&model.UserProfile{UserID: 1, Program: "Ekonomiprogrammet"}))
	profiles.fail = true

	got := svc.LoadProfile(context.Background(), 1)
	require.NotNil(t, got)
	assert.Equal(t, "Ekonomiprogrammet", got.Program)

	// Down store and cold cache: still nil, never an error or panic.
	assert.Nil(t, svc.LoadProfile(context.Background(), 2))
}

func TestSaveProfileDerivesProgramID(t *testing.T) {
	svc, profiles, _, _ := newProfileService()

	p := &model.UserProfile{UserID: 1, Program: "Naturvetenskapsprogrammet", Year: 1}
	svc.SaveProfile(context.Background(), p)

	assert.Equal(t, "NA", p.ProgramID)
	require.Contains(t, profiles.profiles, uint(1))
	assert.Equal(t, "NA", profiles.profiles[1].ProgramID)

	// Unknown names leave the id unset but still save.
	q := &model.UserProfile{UserID: 2, Program: "Hittepåprogrammet"}
	svc.SaveProfile(context.Background(), q)
	assert.Empty(t, q.ProgramID)
	assert.Contains(t, profiles.profiles, uint(2))
}

func TestSaveProfileMarksDirtyOnRemoteFailure(t *testing.T) {
	svc, profiles, _, cache := newProfileService()
	profiles.fail = true

	p := &model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 1}
	svc.SaveProfile(context.Background(), p)

	// The cache has the write even though the store refused it.
	var cached model.UserProfile
	require.NoError(t, cache.GetJSON(context.Background(), "@profile_1", &cached))
	assert.Equal(t, "Teknikprogrammet", cached.Program)
	assert.Equal(t, 1, svc.DirtyCount())

	// Reconciliation replays the cached copy once the store recovers.
	profiles.fail = false
	svc.ReconcileDirty(context.Background())
	assert.Equal(t, 0, svc.DirtyCount())
	require.Contains(t, profiles.profiles, uint(1))
	assert.Equal(t, "Teknikprogrammet", profiles.profiles[1].Program)
}

func TestReconcileDirtyKeepsFlagWhileStoreIsDown(t *testing.T) {
	svc, profiles, _, _ := newProfileService()
	profiles.fail = true

	svc.SaveProfile(context.Background(), &model.UserProfile{UserID: 1, Program: "Teknikprogrammet"})
	require.Equal(t, 1, svc.DirtyCount())

	svc.ReconcileDirty(context.Background())
	assert.Equal(t, 1, svc.DirtyCount(), "still dirty while the store is down")
}

func TestReconcileDirtySurvivesCacheOutage(t *testing.T) {
	svc, profiles, _, cache := newProfileService()
	profiles.fail = true
	svc.SaveProfile(context.Background(), &model.UserProfile{UserID: 1, Program: "Teknikprogrammet"})
	require.Equal(t, 1, svc.DirtyCount())

	// A cache outage during reconciliation is not a miss. The flag stays.
	profiles.fail = false
	cache.fail = true
	svc.ReconcileDirty(context.Background())
	assert.Equal(t, 1, svc.DirtyCount())

	cache.fail = false
	svc.ReconcileDirty(context.Background())
	assert.Equal(t, 0, svc.DirtyCount())
	assert.Contains(t, profiles.profiles, uint(1))
}

func TestLoadCoursesAssignsPaletteByPosition(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()
	enrollments.active[1] = []string{"MATMAT01c", "FYSFYS01a", "SVESVE01"}

	views := svc.LoadCourses(context.Background(), 1)
	require.Len(t, views, 3)
	assert.NotEqual(t, views[0].Color, views[1].Color)
	assert.NotEqual(t, views[0].Icon, views[1].Icon)

	// Same list, same palette.
	again := svc.LoadCourses(context.Background(), 1)
	assert.Equal(t, views, again)
}

func TestLoadCoursesFallsBackToCache(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()
	enrollments.active[1] = []string{"MATMAT01c"}

	// Warm the cache, then take the store down.
	warm := svc.LoadCourses(context.Background(), 1)
	require.Len(t, warm, 1)
	enrollments.fail = true

	views := svc.LoadCourses(context.Background(), 1)
	assert.Equal(t, warm, views)

	// Cold cache degrades to an empty list.
	assert.Empty(t, svc.LoadCourses(context.Background(), 2))
}

func TestAssignCoursesForYearKeepsMandatoryAndSelected(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()

	views, err := svc.AssignCoursesForYear(context.Background(), 1, "Naturvetenskapsprogrammet", 1,
		[]string{"FYSFYS01a"})
	require.NoError(t, err)

	codes := make(map[string]bool, len(views))
	for _, v := range views {
		codes[v.Code] = true
	}
	assert.True(t, codes["MATMAT01c"], "mandatory course always present")
	assert.True(t, codes["SVESVE01"], "mandatory common course always present")
	assert.True(t, codes["FYSFYS01a"], "explicitly selected optional course present")
	assert.False(t, codes["IDRIDR01"], "unselected optional course absent")

	// Active set equals exactly what was returned.
	assert.Len(t, enrollments.active[1], len(views))
}

func TestAssignCoursesForYearNilSelectionTakesAll(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()

	views, err := svc.AssignCoursesForYear(context.Background(), 1, "Naturvetenskapsprogrammet", 1, nil)
	require.NoError(t, err)
	assert.Len(t, enrollments.active[1], len(views))

	codes := make(map[string]bool, len(views))
	for _, v := range views {
		codes[v.Code] = true
	}
	assert.True(t, codes["IDRIDR01"], "nil selection enrolls every candidate")
}

func TestAssignCoursesForYearSecondAssignmentWins(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()

	_, err := svc.AssignCoursesForYear(context.Background(), 1, "Naturvetenskapsprogrammet", 1, nil)
	require.NoError(t, err)

	views, err := svc.AssignCoursesForYear(context.Background(), 1, "Naturvetenskapsprogrammet", 2, nil)
	require.NoError(t, err)

	// Exactly the second set is active, nothing lingers from the first.
	assert.Len(t, enrollments.active[1], len(views))
	for _, v := range views {
		assert.NotEqual(t, "BIOBIO01", v.Code, "year 1 course must not survive reassignment")
	}
}

func TestAssignCoursesForYearUnknownProgram(t *testing.T) {
	svc, _, _, _ := newProfileService()
	_, err := svc.AssignCoursesForYear(context.Background(), 1, "Okänt program", 1, nil)
	assert.Error(t, err)
}

func TestLoadOverviewAutoGeneratesOnce(t *testing.T) {
	svc, profiles, enrollments, _ := newProfileService()
	selected, _ := json.Marshal([]string{"FYSFYS01a"})
	profiles.profiles[1] = &model.UserProfile{
		UserID:          1,
		Program:         "Naturvetenskapsprogrammet",
		Year:            1,
		SelectedCourses: selected,
	}

	ov := svc.LoadOverview(context.Background(), 1)
	require.NotNil(t, ov.Profile)
	assert.NotEmpty(t, ov.Courses, "empty course set with a complete profile is synthesized")
	assert.Equal(t, 1, enrollments.replaces)

	// The guard fires at most once per (user, program, year).
	enrollments.active[1] = nil
	svc.LoadOverview(context.Background(), 1)
	assert.Equal(t, 1, enrollments.replaces)
}

func TestLoadOverviewSkipsGenerationOverExistingEnrollments(t *testing.T) {
	svc, profiles, enrollments, cache := newProfileService()
	profiles.profiles[1] = &model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 1}
	enrollments.active[1] = []string{"MATMAT01c"}

	// The course view comes back empty because the store is down and the
	// cache is cold, not because the user has no enrollments. Generation
	// must not clobber the real set.
	require.NoError(t, cache.SetJSON(context.Background(), "@profile_1",
		&model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 1}))
	enrollments.fail = true
	profiles.fail = true

	ov := svc.LoadOverview(context.Background(), 1)
	assert.Empty(t, ov.Courses)
	assert.Zero(t, enrollments.replaces)

	// Once the store recovers the real enrollments are still there.
	enrollments.fail = false
	profiles.fail = false
	assert.Equal(t, []string{"MATMAT01c"}, enrollments.active[1])
}

func TestLoadOverviewNoProfileNoGeneration(t *testing.T) {
	svc, _, enrollments, _ := newProfileService()

	ov := svc.LoadOverview(context.Background(), 1)
	assert.Nil(t, ov.Profile)
	assert.Empty(t, ov.Courses)
	assert.Zero(t, enrollments.replaces)
}

func TestResetClearsCacheAndGuard(t *testing.T) {
	svc, profiles, _, cache := newProfileService()
	profiles.profiles[1] = &model.UserProfile{UserID: 1, Program: "Teknikprogrammet", Year: 1, Onboarded: true}
	svc.LoadProfile(context.Background(), 1) // warms @profile_1

	svc.Reset(context.Background(), 1)

	var cached model.UserProfile
	assert.Error(t, cache.GetJSON(context.Background(), "@profile_1", &cached))
	assert.False(t, profiles.profiles[1].Onboarded)

	// Profile row survives a reset.
	assert.Contains(t, profiles.profiles, uint(1))
}
