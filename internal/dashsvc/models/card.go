package models

import "time"

// Card is a dashboard tile with a stable identity, independent of the data
// pushed into it. ChartType is fixed at creation; changing it would invalidate
// the payload shape of any envelope already stored for the card.
type Card struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Subtitle          string    `json:"subtitle,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	SourceAttribution string    `json:"source_attribution,omitempty"`
	ChartType         string    `json:"chart_type"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasTag reports tag membership. Tag order is display order only.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CardSpec is the provisioning input for a new card.
type CardSpec struct {
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	SourceAttribution string   `json:"source_attribution,omitempty"`
	ChartType         string   `json:"chart_type"`
}

// CardPatch carries a partial update. Nil fields are left untouched.
// ChartType is present only so an attempted change can be rejected.
type CardPatch struct {
	Title             *string   `json:"title,omitempty"`
	Subtitle          *string   `json:"subtitle,omitempty"`
	Tags              *[]string `json:"tags,omitempty"`
	SourceAttribution *string   `json:"source_attribution,omitempty"`
	ChartType         *string   `json:"chart_type,omitempty"`
}

// CardFilter narrows a registry listing. Zero values match everything.
type CardFilter struct {
	Source string
	Tag    string
}

// Matches reports whether the card passes the filter.
func (f CardFilter) Matches(c *Card) bool {
	if f.Source != "" && c.SourceAttribution != f.Source {
		return false
	}
	if f.Tag != "" && !c.HasTag(f.Tag) {
		return false
	}
	return true
}
