package service_test

import (
	"context"
	"testing"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/repository/postgres"
	"github.com/arjunm/coursehub/internal/service"
	"github.com/arjunm/coursehub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseService(t *testing.T) (*service.CourseService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewCourseService(repos.Course, repos.Lecture, repos.Enrollment, repos.Rating, repos.User)
	return svc, testDB
}

func TestCourseService_CreateCourse(t *testing.T) {
	svc, testDB := newCourseService(t)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	course, err := svc.CreateCourse(ctx, instructor.ID, service.CreateCourseInput{
		Title:    "Intro to Go",
		Category: "programming",
		Price:    499.00,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LevelBeginner, course.Level)
	assert.Equal(t, "INR", course.Currency)
	assert.False(t, course.IsPublished)

	// Students cannot author courses.
	_, err = svc.CreateCourse(ctx, student.ID, service.CreateCourseInput{
		Title:    "Nope",
		Category: "programming",
	})
	assert.ErrorIs(t, err, domain.ErrNotInstructor)
}

func TestCourseService_Visibility(t *testing.T) {
	svc, testDB := newCourseService(t)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	admin, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).Build(t, testDB.DB)
	hidden := testutil.NewCourseBuilder(instructor.ID).Unpublished().Build(t, testDB.DB)

	tests := []struct {
		name    string
		viewer  uuid.UUID
		wantErr error
	}{
		{name: "anonymous viewer", viewer: uuid.Nil, wantErr: domain.ErrCourseNotFound},
		{name: "unrelated student", viewer: student.ID, wantErr: domain.ErrCourseNotFound},
		{name: "instructor sees own draft", viewer: instructor.ID},
		{name: "admin sees draft", viewer: admin.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetCourse(ctx, hidden.ID, tt.viewer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, hidden.ID, got.ID)
		})
	}
}

func TestCourseService_ListLectures_PreviewGating(t *testing.T) {
	svc, testDB := newCourseService(t)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(instructor.ID).Build(t, testDB.DB)

	_, err := svc.AddLecture(ctx, course.ID, instructor.ID, service.AddLectureInput{
		Title:     "Welcome",
		VideoURL:  "https://cdn.example.com/welcome.mp4",
		IsPreview: true,
		Position:  1,
	})
	require.NoError(t, err)
	_, err = svc.AddLecture(ctx, course.ID, instructor.ID, service.AddLectureInput{
		Title:    "Deep Dive",
		VideoURL: "https://cdn.example.com/deep-dive.mp4",
		Position: 2,
	})
	require.NoError(t, err)

	// Non-enrolled student only gets preview video URLs.
	lectures, err := svc.ListLectures(ctx, course.ID, student.ID)
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.NotEmpty(t, lectures[0].VideoURL)
	assert.Empty(t, lectures[1].VideoURL)

	// Enrolling unlocks everything.
	require.NoError(t, testDB.DB.Create(&domain.Enrollment{
		ID:         uuid.New(),
		UserID:     student.ID,
		CourseID:   course.ID,
		EnrolledAt: course.CreatedAt,
	}).Error)

	lectures, err = svc.ListLectures(ctx, course.ID, student.ID)
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.NotEmpty(t, lectures[1].VideoURL)
}

func TestCourseService_RateCourse(t *testing.T) {
	svc, testDB := newCourseService(t)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(instructor.ID).Build(t, testDB.DB)

	_, err := svc.RateCourse(ctx, course.ID, student.ID, 6, "off the scale")
	assert.ErrorIs(t, err, domain.ErrInvalidStars)

	_, err = svc.RateCourse(ctx, course.ID, student.ID, 5, "great")
	assert.ErrorIs(t, err, domain.ErrNotEnrolled)

	require.NoError(t, testDB.DB.Create(&domain.Enrollment{
		ID:         uuid.New(),
		UserID:     student.ID,
		CourseID:   course.ID,
		EnrolledAt: course.CreatedAt,
	}).Error)

	rating, err := svc.RateCourse(ctx, course.ID, student.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Stars)

	// Re-rating updates in place.
	_, err = svc.RateCourse(ctx, course.ID, student.ID, 3, "cooled off")
	require.NoError(t, err)

	ratings, err := svc.ListRatings(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 3, ratings[0].Stars)
}
