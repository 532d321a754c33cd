package models

const CollectionSubjects = "subjects"

type Subject struct {
	Base        `bson:",inline"`
	SchoolID    string `bson:"schoolId" json:"schoolId"`
	Name        string `bson:"name" json:"name"`
	Code        string `bson:"code,omitempty" json:"code,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
