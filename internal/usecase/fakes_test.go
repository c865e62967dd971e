package usecase

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasavipoluri/student-registry-api/internal/model"
)

// fakeUserRepo is an in-memory UserRepository keyed by username.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Username]; ok {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}

	clone := *user
	f.users[user.Username] = &clone

	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[username]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, username, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[username]; ok {
		user.PasswordHash = passwordHash
	}

	return nil
}

func (f *fakeUserRepo) SetOTP(_ context.Context, username, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[username]; ok {
		user.OTP = otp
	}

	return nil
}

func (f *fakeUserRepo) ClearOTP(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[username]; ok {
		user.OTP = ""
	}

	return nil
}

func (f *fakeUserRepo) SetCourseRegistered(_ context.Context, username string, registered bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[username]; ok {
		user.CourseRegistered = registered
	}

	return nil
}

// fakeStudentRepo is an in-memory StudentRepository keyed by record ID.
type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[int64]*model.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*model.Student)}
}

func (f *fakeStudentRepo) Insert(_ context.Context, student *model.Student) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *student
	f.students[student.ID] = &clone

	return student, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	student, ok := f.students[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *student
	return &clone, nil
}

func (f *fakeStudentRepo) GetRegisteredByEmail(_ context.Context, email string) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, student := range f.students {
		if student.Email == email && student.CourseRegistered {
			clone := *student
			return &clone, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeStudentRepo) Replace(_ context.Context, id int64, student *model.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.students[id]
	if !ok {
		return nil
	}

	existing.FirstName = student.FirstName
	existing.LastName = student.LastName
	existing.DateOfBirth = student.DateOfBirth
	existing.Email = student.Email
	existing.Phone = student.Phone
	existing.CollegeName = student.CollegeName
	existing.Degree = student.Degree
	existing.Course = student.Course

	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) List(_ context.Context) ([]*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	students := make([]*model.Student, 0, len(f.students))
	for _, student := range f.students {
		clone := *student
		students = append(students, &clone)
	}

	return students, nil
}

// fakeSequenceRepo is an in-memory SequenceRepository.
type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (f *fakeSequenceRepo) Next(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters[name]++
	return f.counters[name], nil
}

// fakeMailSender records dispatched emails.
type fakeMailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailSender) SendSimple(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
