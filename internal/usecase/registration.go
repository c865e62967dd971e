package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasavipoluri/student-registry-api/internal/model"
	"github.com/vasavipoluri/student-registry-api/internal/repository"
)

// RegistrationUsecase defines the business logic for student-course
// registration records.
type RegistrationUsecase interface {
	// Create submits a new registration for the session user and returns
	// the refreshed roster.
	Create(ctx context.Context, username string, params StudentParams) ([]*model.Student, error)

	// Get looks a record up by ID. Reads are not ownership-checked; any
	// authenticated caller may fetch any record.
	Get(ctx context.Context, id int64) (*model.Student, error)

	// Edit replaces every mutable field of the record. Only the owner may
	// edit; ownership is the stored email matching the session username.
	Edit(ctx context.Context, username string, id int64, params StudentParams) error

	// Delete permanently removes the record. Same ownership rule as Edit.
	Delete(ctx context.Context, username string, id int64) error

	// List returns the unfiltered roster.
	List(ctx context.Context) ([]*model.Student, error)
}

// StudentParams defines the mutable fields of a registration record.
type StudentParams struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	Phone       string
	CollegeName string
	Degree      string
	Course      string
}

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNotOwner        = errors.New("not the owner of this course registration")
)

type registrationUsecase struct {
	studentRepo repository.StudentRepository
	userRepo    repository.UserRepository
}

// NewRegistrationUsecase creates a new instance of RegistrationUsecase.
func NewRegistrationUsecase(
	studentRepo repository.StudentRepository,
	userRepo repository.UserRepository,
) RegistrationUsecase {
	return &registrationUsecase{
		studentRepo: studentRepo,
		userRepo:    userRepo,
	}
}

func (u *registrationUsecase) Create(
	ctx context.Context,
	username string,
	params StudentParams,
) ([]*model.Student, error) {
	// Reject when either the submitted email or the session user already
	// completed a registration.
	for _, email := range []string{params.Email, username} {
		_, err := u.studentRepo.GetRegisteredByEmail(ctx, email)
		if err == nil {
			return nil, ErrAlreadyRegistered
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	// The record is keyed by the sequence value allocated to the user at
	// signup, not a freshly drawn one.
	student := &model.Student{
		ID:               user.ID,
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		DateOfBirth:      params.DateOfBirth,
		Email:            params.Email,
		Phone:            params.Phone,
		CollegeName:      params.CollegeName,
		Degree:           params.Degree,
		Course:           params.Course,
		CourseRegistered: true,
	}

	if _, err := u.studentRepo.Insert(ctx, student); err != nil {
		return nil, err
	}

	// Best-effort follow-up write; the insert above is not rolled back if
	// this flag flip fails.
	if err := u.userRepo.SetCourseRegistered(ctx, username, true); err != nil {
		return nil, err
	}

	return u.studentRepo.List(ctx)
}

func (u *registrationUsecase) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStudentNotFound
		}

		return nil, err
	}

	return student, nil
}

func (u *registrationUsecase) Edit(ctx context.Context, username string, id int64, params StudentParams) error {
	if err := u.checkOwnership(ctx, username, id); err != nil {
		return err
	}

	student := &model.Student{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DateOfBirth: params.DateOfBirth,
		Email:       params.Email,
		Phone:       params.Phone,
		CollegeName: params.CollegeName,
		Degree:      params.Degree,
		Course:      params.Course,
	}

	return u.studentRepo.Replace(ctx, id, student)
}

func (u *registrationUsecase) Delete(ctx context.Context, username string, id int64) error {
	if err := u.checkOwnership(ctx, username, id); err != nil {
		return err
	}

	return u.studentRepo.Delete(ctx, id)
}

func (u *registrationUsecase) List(ctx context.Context) ([]*model.Student, error) {
	return u.studentRepo.List(ctx)
}

// checkOwnership enforces the ownership rule on mutation. A missing record
// is reported as an ownership failure too, so the mutation path never
// reveals which IDs exist.
func (u *registrationUsecase) checkOwnership(ctx context.Context, username string, id int64) error {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotOwner
		}

		return err
	}

	if student.Email != username {
		return ErrNotOwner
	}

	return nil
}
