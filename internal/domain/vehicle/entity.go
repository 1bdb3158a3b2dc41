package vehicle

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidVehicleID = errors.New("invalid vehicle id")
	ErrInvalidPlate     = errors.New("invalid license plate")
	ErrInvalidCategory  = errors.New("invalid vehicle category")
)

type Category string

const (
	CategoryCompact Category = "compact"
	CategorySedan   Category = "sedan"
	CategorySUV     Category = "suv"
	CategoryVan     Category = "van"
	CategoryLuxury  Category = "luxury"
)

func NewCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	switch c {
	case CategoryCompact, CategorySedan, CategorySUV, CategoryVan, CategoryLuxury:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

func (c Category) String() string {
	return string(c)
}

// Vehicle is fleet reference data. Reservations hold it by id only; there is
// no lifecycle coupling between a vehicle and its reservations.
type Vehicle struct {
	id       uuid.UUID
	plate    string
	model    string
	category Category
}

func NewVehicle(id uuid.UUID, plate, model, category string) (*Vehicle, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidVehicleID
	}
	trimmedPlate := strings.ToUpper(strings.TrimSpace(plate))
	if trimmedPlate == "" {
		return nil, ErrInvalidPlate
	}
	cat, err := NewCategory(category)
	if err != nil {
		return nil, err
	}
	return &Vehicle{
		id:       id,
		plate:    trimmedPlate,
		model:    strings.TrimSpace(model),
		category: cat,
	}, nil
}

func (v *Vehicle) ID() uuid.UUID      { return v.id }
func (v *Vehicle) Plate() string      { return v.plate }
func (v *Vehicle) Model() string      { return v.model }
func (v *Vehicle) Category() Category { return v.category }
