package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Meal struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Price       float64    `json:"price" gorm:"not null"`
	Description *string    `json:"description"`
	Options     OptionList `json:"options" gorm:"column:options_json"`
	CategoryID  *uint      `json:"category_id" gorm:"index"`
	Category    *Category  `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// AfterFind normalizes a NULL options column. gorm zeroes a Scanner field
// for NULL instead of calling Scan.
func (m *Meal) AfterFind(*gorm.DB) error {
	if m.Options == nil {
		m.Options = OptionList{}
	}
	return nil
}

// OptionList is the ordered list of customization labels of a meal.
// It is stored as a JSON array; an empty list is stored as NULL and
// Meal.AfterFind turns NULL back into an empty list.
type OptionList []string

func (OptionList) GormDataType() string { return "text" }

func (o OptionList) Value() (driver.Value, error) {
	if len(o) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *OptionList) Scan(value any) error {
	raw, err := columnBytes(value)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if len(raw) == 0 {
		*o = OptionList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("options: decode %q: %w", raw, err)
	}
	if list == nil {
		list = []string{}
	}
	*o = list
	return nil
}

func (o OptionList) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(o))
}

// Contains reports whether label is one of the options.
func (o OptionList) Contains(label string) bool {
	for _, opt := range o {
		if opt == label {
			return true
		}
	}
	return false
}

func columnBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
