package models

const CollectionUsers = "users"

// UserRole gates which portal a user lands on.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
)

// User is any person with portal access. Parents reference their children via StudentIDs.
type User struct {
	Base       `bson:",inline"`
	SchoolID   string   `bson:"schoolId,omitempty" json:"schoolId,omitempty"`
	Email      string   `bson:"email" json:"email"`
	FirstName  string   `bson:"firstName" json:"firstName"`
	LastName   string   `bson:"lastName" json:"lastName"`
	Role       UserRole `bson:"role" json:"role"`
	StudentIDs []string `bson:"studentIds,omitempty" json:"studentIds,omitempty"`
}
