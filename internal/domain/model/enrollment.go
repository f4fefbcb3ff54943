package model

// EnrollmentID is the natural key of a (user, course) pair.
func EnrollmentID(userID, courseID string) string {
	return userID + "-" + courseID
}

func NewEnrollment(userID, courseID string) Document {
	return Document{
		FieldID:     EnrollmentID(userID, courseID),
		FieldUser:   userID,
		FieldCourse: courseID,
	}
}
