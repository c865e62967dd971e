package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasavipoluri/student-registry-api/internal/model"
)

// StudentRepository defines the interface for student registration records.
type StudentRepository interface {
	Insert(ctx context.Context, student *model.Student) (*model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)

	// GetRegisteredByEmail returns the registration with the course flag
	// set for the given email, if one exists.
	GetRegisteredByEmail(ctx context.Context, email string) (*model.Student, error)

	// Replace overwrites every mutable field of the record. This is a full
	// replace, not a partial merge.
	Replace(ctx context.Context, id int64, student *model.Student) error

	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Student, error)
}

const studentCollection = "student_details"

type studentMongoRepository struct {
	db *mongo.Database
}

// NewStudentMongoRepository creates a new MongoDB repository for student
// registration records.
func NewStudentMongoRepository(db *mongo.Database) StudentRepository {
	return &studentMongoRepository{db: db}
}

func (r *studentMongoRepository) Insert(ctx context.Context, student *model.Student) (*model.Student, error) {
	if _, err := r.db.Collection(studentCollection).InsertOne(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

func (r *studentMongoRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	result := r.db.Collection(studentCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) GetRegisteredByEmail(ctx context.Context, email string) (*model.Student, error) {
	filter := bson.M{
		"email":             email,
		"course_registered": true,
	}

	result := r.db.Collection(studentCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) Replace(ctx context.Context, id int64, student *model.Student) error {
	update := bson.M{
		"$set": bson.M{
			"firstname":   student.FirstName,
			"lastname":    student.LastName,
			"dateofbirth": student.DateOfBirth,
			"email":       student.Email,
			"phone":       student.Phone,
			"collegename": student.CollegeName,
			"degree":      student.Degree,
			"course":      student.Course,
		},
	}

	_, err := r.db.Collection(studentCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *studentMongoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Collection(studentCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *studentMongoRepository) List(ctx context.Context) ([]*model.Student, error) {
	cursor, err := r.db.Collection(studentCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	for cursor.Next(ctx) {
		var student model.Student
		if err := cursor.Decode(&student); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
