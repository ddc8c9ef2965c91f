package domain

import "time"

type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Label         string        `json:"label"`
	Language      Language      `json:"language"`
	CreatedAt     time.Time     `json:"createdAt"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"categoryId"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"createdAt"`
}
