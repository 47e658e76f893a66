package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amco/vacancies/internal/config"
	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/repositories"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	jobs         *Jobs
	applications *Applications
	uploads      *Uploads
	history      *repositories.ActionHistory
	appliedRepo  *repositories.AppliedJobs
	jobsRepo     *repositories.Jobs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	dbCtx, err := repositories.NewDbContext(config.DBConfig{
		Driver:           config.DriverSqlite,
		ConnectionString: filepath.Join(dir, "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	bus := EventBus.New()
	env := &testEnv{
		history:     repositories.NewActionHistoryRepository(dbCtx.DB),
		appliedRepo: repositories.NewAppliedJobsRepository(dbCtx.DB),
		jobsRepo:    repositories.NewJobsRepository(dbCtx.DB),
	}

	_, err = NewAuditLogger(env.history, bus)
	require.NoError(t, err)

	env.uploads, err = NewUploads(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	env.jobs, err = NewJobs(env.jobsRepo, bus)
	require.NoError(t, err)

	env.applications, err = NewApplications(env.appliedRepo, env.jobs, env.uploads, bus)
	require.NoError(t, err)

	return env
}

func newFileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("cv", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["cv"][0]
}

var applicant = ApplicationForm{
	FirstName:  "Abebe",
	FatherName: "Kebede",
	Email:      "abebe@example.com",
	Gender:     "male",
	Age:        29,
}

func Test_Jobs_Create_ShouldFixActiveFlagAndRecordHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	env.jobs.SetClock(func() time.Time { return now })

	deadline := now.Add(time.Hour)
	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r", Deadline: &deadline})
	require.NoError(t, err)
	assert.True(t, job.IsActive)

	// time moves past the deadline; the stored flag must not change
	env.jobs.SetClock(func() time.Time { return deadline.Add(24 * time.Hour) })

	active, err := env.jobs.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, job.ID, active[0].ID)

	entries, err := env.history.GetByEntity(ctx, entities.EntityTypeJob, job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.ActionAdded, entries[0].Action)
	assert.Equal(t, "Job 'Cook' added successfully.", entries[0].Details)
}

func Test_Jobs_Create_WithPastDeadline_ShouldBeInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r", Deadline: &past})
	require.NoError(t, err)
	assert.False(t, job.IsActive)

	active, err := env.jobs.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := env.jobs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func Test_Jobs_Delete_ShouldRemoveRowAndAppendOneEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	keep, err := env.jobs.Create(ctx, JobForm{Title: "Waiter", Description: "d", Requirements: "r"})
	require.NoError(t, err)
	job, err := env.jobs.Create(ctx, JobForm{Title: "Senior Engineer", Description: "d", Requirements: "r"})
	require.NoError(t, err)

	deleted, err := env.jobs.Delete(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, deleted.ID)

	_, err = env.jobs.Get(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.jobs.Get(ctx, keep.ID)
	assert.NoError(t, err)

	entries, err := env.history.GetByEntity(ctx, entities.EntityTypeJob, job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.ActionDeleted, entries[1].Action)
	assert.Equal(t, "Job 'Senior Engineer' deleted successfully.", entries[1].Details)
}

func Test_Jobs_Delete_WhenMissing_ShouldReturnErrNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.jobs.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Jobs_Search_MatchesTitleSubstringIgnoringCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.jobs.Create(ctx, JobForm{Title: "Senior Engineer", Description: "cooking", Requirements: "r"})
	require.NoError(t, err)
	_, err = env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "engineering", Requirements: "r"})
	require.NoError(t, err)

	jobs, err := env.jobs.Search(ctx, "eng")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Engineer", jobs[0].Title)
}

func Test_Applications_Submit_ShouldStoreFileAndRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	future := time.Now().Add(24 * time.Hour)
	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r", Deadline: &future})
	require.NoError(t, err)

	application, err := env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "resume.pdf", "pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/resume.pdf", application.CVPath)
	assert.Equal(t, job.ID, application.JobID)
	assert.Equal(t, "abebe@example.com", application.ApplicantEmail)

	content, err := os.ReadFile(filepath.Join(env.uploads.Dir(), "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))

	listed, err := env.applications.ListForJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	entries, err := env.history.GetByEntity(ctx, entities.EntityTypeAppliedJob, application.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.ActionAdded, entries[0].Action)
}

func Test_Applications_Submit_SameFileName_LastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r"})
	require.NoError(t, err)

	_, err = env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "cv.pdf", "first"))
	require.NoError(t, err)
	_, err = env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "cv.pdf", "second"))
	require.NoError(t, err)

	file, err := env.uploads.Path("uploads/cv.pdf")
	require.NoError(t, err)
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func Test_Applications_Submit_AfterDeadline_ShouldRejectEvenIfStoredActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := time.Now()
	deadline := created.Add(time.Hour)
	env.jobs.SetClock(func() time.Time { return created })

	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r", Deadline: &deadline})
	require.NoError(t, err)
	require.True(t, job.IsActive)

	env.applications.SetClock(func() time.Time { return deadline.Add(time.Minute) })

	_, err = env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "late.pdf", "x"))
	assert.ErrorIs(t, err, ErrDeadlinePassed)

	listed, err := env.applications.ListForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = os.Stat(filepath.Join(env.uploads.Dir(), "late.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func Test_Jobs_ListActive_AfterDeadline_ShouldStillListJobButRejectApplications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := created.Add(2 * time.Hour)
	env.jobs.SetClock(func() time.Time { return created })

	job, err := env.jobs.Create(ctx, JobForm{Title: "Driver", Description: "d", Requirements: "r", Deadline: &deadline})
	require.NoError(t, err)

	later := func() time.Time { return deadline.Add(48 * time.Hour) }
	env.jobs.SetClock(later)
	env.applications.SetClock(later)

	active, err := env.jobs.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, job.ID, active[0].ID)
	assert.True(t, active[0].IsActive)

	stored, err := env.jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	_, err = env.applications.CheckOpen(ctx, job.ID)
	assert.ErrorIs(t, err, ErrDeadlinePassed)

	_, err = env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "late.pdf", "x"))
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func Test_Applications_Submit_UnknownJob_ShouldReturnErrNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applications.Submit(context.Background(), 7, applicant, newFileHeader(t, "cv.pdf", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Applications_Delete_ShouldReturnOriginalJobAndAppendEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	job, err := env.jobs.Create(ctx, JobForm{Title: "Cook", Description: "d", Requirements: "r"})
	require.NoError(t, err)
	first, err := env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "a.pdf", "a"))
	require.NoError(t, err)
	second, err := env.applications.Submit(ctx, job.ID, applicant, newFileHeader(t, "b.pdf", "b"))
	require.NoError(t, err)

	deleted, err := env.applications.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, deleted.JobID)

	listed, err := env.applications.ListForJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)

	entries, err := env.history.GetByEntity(ctx, entities.EntityTypeAppliedJob, first.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.ActionDeleted, entries[1].Action)
	assert.Contains(t, entries[1].Details, "deleted successfully")

	_, err = env.applications.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Uploads_Path_StripsDirectoryPrefix(t *testing.T) {
	uploads, err := NewUploads(t.TempDir())
	require.NoError(t, err)

	bare, err := uploads.Path("resume.pdf")
	require.NoError(t, err)
	prefixed, err := uploads.Path("uploads/resume.pdf")
	require.NoError(t, err)
	nested, err := uploads.Path("a/b/resume.pdf")
	require.NoError(t, err)

	assert.Equal(t, bare, prefixed)
	assert.Equal(t, filepath.Join(uploads.Dir(), "resume.pdf"), nested)
}

func Test_Uploads_Path_WhenNameIsDirectory_ShouldReturnErrInvalidFileName(t *testing.T) {
	uploads, err := NewUploads(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "/", ".", "..", "uploads/.."} {
		_, err = uploads.Path(name)
		assert.ErrorIs(t, err, ErrInvalidFileName, "name %q", name)
	}
}
