package models

import "time"

// Team groups technicians under a lead
type Team struct {
	ID                string    `json:"id" dynamodbav:"id" bson:"id"`
	Name              string    `json:"name" dynamodbav:"name" bson:"name"`
	Lead              string    `json:"lead" dynamodbav:"lead" bson:"lead"`
	Members           []string  `json:"members" dynamodbav:"members" bson:"members"`
	AssignedEquipment []string  `json:"assignedEquipment" dynamodbav:"assignedEquipment" bson:"assignedEquipment"`
	CreatedAt         time.Time `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// TeamMember is a member email hydrated with the user's display name
type TeamMember struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// TeamView is the listing shape of a team
type TeamView struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Lead              string       `json:"lead"`
	Members           []TeamMember `json:"members"`
	AssignedEquipment []string     `json:"assignedEquipment"`
}

// TeamRequest is the create/update payload
type TeamRequest struct {
	Name    string   `json:"name" example:"Mechanics"`
	Lead    string   `json:"lead" example:"Jane Doe"`
	Members []string `json:"members" example:"tech@gearguard.com"`
}
