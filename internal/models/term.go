package models

import "time"

const CollectionTerms = "terms"

// Term models an academic term of a school.
type Term struct {
	Base      `bson:",inline"`
	SchoolID  string     `bson:"schoolId" json:"schoolId"`
	Name      string     `bson:"name" json:"name"`
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive  bool       `bson:"isActive" json:"isActive"`
}
