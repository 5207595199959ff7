package models

// CalendarEvent is a dated entry shown on the maintenance calendar
type CalendarEvent struct {
	ID          string `json:"id" dynamodbav:"id" bson:"id" yaml:"-"`
	Title       string `json:"title" dynamodbav:"title" bson:"title" yaml:"title"`
	Date        string `json:"date" dynamodbav:"date" bson:"date" yaml:"date"`
	EquipmentID string `json:"equipmentId,omitempty" dynamodbav:"equipmentId,omitempty" bson:"equipmentId,omitempty" yaml:"equipmentId"`
}
