package models

const CollectionSchools = "schools"

// School is the tenant every other document hangs off.
type School struct {
	Base    `bson:",inline"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
}
