package models

const CollectionNotifications = "notifications"

// Notification is an admin broadcast. An empty Audience means everyone.
type Notification struct {
	Base      `bson:",inline"`
	SchoolID  string   `bson:"schoolId,omitempty" json:"schoolId,omitempty"`
	Title     string   `bson:"title" json:"title"`
	Message   string   `bson:"message" json:"message"`
	Audience  UserRole `bson:"audience,omitempty" json:"audience,omitempty"`
	CreatedBy string   `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}
