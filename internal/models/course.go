package models

const CollectionCourses = "courses"

// Course is a subject taught in a term by a teacher.
type Course struct {
	Base        `bson:",inline"`
	SchoolID    string `bson:"schoolId" json:"schoolId"`
	SubjectID   string `bson:"subjectId,omitempty" json:"subjectId,omitempty"`
	TermID      string `bson:"termId,omitempty" json:"termId,omitempty"`
	TeacherID   string `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	Name        string `bson:"name" json:"name"`
	Code        string `bson:"code,omitempty" json:"code,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
