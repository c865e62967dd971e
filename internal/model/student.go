package model

// Student represents a student-course registration record. The ID is the
// sequence value of the user who created the record; ownership is tied to
// the stored email matching the session username.
type Student struct {
	ID               int64  `bson:"_id"               json:"id"`
	FirstName        string `bson:"firstname"         json:"first_name"`
	LastName         string `bson:"lastname"          json:"last_name"`
	DateOfBirth      string `bson:"dateofbirth"       json:"date_of_birth"`
	Email            string `bson:"email"             json:"email"`
	Phone            string `bson:"phone"             json:"phone"`
	CollegeName      string `bson:"collegename"       json:"college_name"`
	Degree           string `bson:"degree"            json:"degree"`
	Course           string `bson:"course"            json:"course"`
	CourseRegistered bool   `bson:"course_registered" json:"course_registered"`
}
