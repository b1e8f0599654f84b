package entity

import "time"

// City representa una ciudad; siempre pertenece a una Region.
type City struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Label     string    `json:"label"`
	RegionID  string    `json:"regionId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
