package models

import "time"

const CollectionCourseEnrollments = "courseEnrollments"

// EnrollmentStatus describes where a student stands in a course.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// CourseEnrollment links a student to a course.
type CourseEnrollment struct {
	Base       `bson:",inline"`
	SchoolID   string           `bson:"schoolId" json:"schoolId"`
	CourseID   string           `bson:"courseId" json:"courseId"`
	StudentID  string           `bson:"studentId" json:"studentId"`
	Status     EnrollmentStatus `bson:"status,omitempty" json:"status,omitempty"`
	EnrolledAt *time.Time       `bson:"enrolledAt,omitempty" json:"enrolledAt,omitempty"`
}
