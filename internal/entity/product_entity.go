package entity

type Product struct {
	Id          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory" yaml:"subcategory"`
	Color       string   `json:"color" yaml:"color"`
	Price       float64  `json:"price" yaml:"price"`
	Currency    string   `json:"currency" yaml:"currency"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	AgeGroup    string   `json:"age_group" yaml:"age_group"`
	Gender      string   `json:"gender" yaml:"gender"`
	Image       string   `json:"image" yaml:"image"`
	Stock       int      `json:"stock" yaml:"stock"`
}

// SearchCriteria filters the catalog. Zero values mean "not set"; every set
// field must match for a product to be returned.
type SearchCriteria struct {
	Color    string   `json:"color,omitempty"`
	Category string   `json:"category,omitempty"`
	MaxPrice float64  `json:"max_price,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	AgeGroup string   `json:"age_group,omitempty"`
}

const (
	CriterionColor    = "color"
	CriterionCategory = "category"
	CriterionMaxPrice = "max_price"
	CriterionTags     = "tags"
	CriterionGender   = "gender"
	CriterionAgeGroup = "age_group"
)

// Len counts the criteria that are set.
func (c SearchCriteria) Len() int {
	n := 0
	for _, name := range []string{CriterionColor, CriterionCategory, CriterionMaxPrice, CriterionTags, CriterionGender, CriterionAgeGroup} {
		if c.Has(name) {
			n++
		}
	}
	return n
}

func (c SearchCriteria) IsEmpty() bool {
	return c.Len() == 0
}

func (c SearchCriteria) Has(name string) bool {
	switch name {
	case CriterionColor:
		return c.Color != ""
	case CriterionCategory:
		return c.Category != ""
	case CriterionMaxPrice:
		return c.MaxPrice > 0
	case CriterionTags:
		return len(c.Tags) > 0
	case CriterionGender:
		return c.Gender != ""
	case CriterionAgeGroup:
		return c.AgeGroup != ""
	}
	return false
}

// Without returns a copy of the criteria with one criterion cleared.
func (c SearchCriteria) Without(name string) SearchCriteria {
	out := c
	out.Tags = append([]string(nil), c.Tags...)
	switch name {
	case CriterionColor:
		out.Color = ""
	case CriterionCategory:
		out.Category = ""
	case CriterionMaxPrice:
		out.MaxPrice = 0
	case CriterionTags:
		out.Tags = nil
	case CriterionGender:
		out.Gender = ""
	case CriterionAgeGroup:
		out.AgeGroup = ""
	}
	return out
}

// AddTag appends a tag once.
func (c *SearchCriteria) AddTag(tag string) {
	for _, t := range c.Tags {
		if t == tag {
			return
		}
	}
	c.Tags = append(c.Tags, tag)
}
