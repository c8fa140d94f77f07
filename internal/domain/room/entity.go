package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidPrice    = errors.New("price cannot be negative")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrInvalidUnits    = errors.New("total rooms cannot be negative")
)

// Room describes a bookable room category. TotalUnits is the number of
// physical rooms of this category the hotel can sell per night.
type Room struct {
	id          uuid.UUID
	name        string
	roomType    Type
	description string
	priceCents  int64
	currency    string
	capacity    int
	totalUnits  int
	available   bool
	amenities   []string
	imageURL    string
	floorNumber int
	sizeSqft    int
	createdAt   time.Time
	updatedAt   time.Time
}

type NewRoomParams struct {
	Name        string
	RoomType    Type
	Description string
	PriceCents  int64
	Currency    string
	Capacity    int
	TotalUnits  int
	Amenities   []string
	ImageURL    string
	FloorNumber int
	SizeSqft    int
}

func NewRoom(p NewRoomParams) (*Room, error) {
	if !p.RoomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if p.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if p.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if p.TotalUnits < 0 {
		return nil, ErrInvalidUnits
	}

	currency := p.Currency
	if currency == "" {
		currency = "usd"
	}

	return &Room{
		id:          uuid.New(),
		name:        p.Name,
		roomType:    p.RoomType,
		description: p.Description,
		priceCents:  p.PriceCents,
		currency:    currency,
		capacity:    p.Capacity,
		totalUnits:  p.TotalUnits,
		available:   true,
		amenities:   p.Amenities,
		imageURL:    p.ImageURL,
		floorNumber: p.FloorNumber,
		sizeSqft:    p.SizeSqft,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name string,
	roomType Type,
	description string,
	priceCents int64,
	currency string,
	capacity, totalUnits int,
	available bool,
	amenities []string,
	imageURL string,
	floorNumber, sizeSqft int,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		name:        name,
		roomType:    roomType,
		description: description,
		priceCents:  priceCents,
		currency:    currency,
		capacity:    capacity,
		totalUnits:  totalUnits,
		available:   available,
		amenities:   amenities,
		imageURL:    imageURL,
		floorNumber: floorNumber,
		sizeSqft:    sizeSqft,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) Update(p NewRoomParams) error {
	if !p.RoomType.IsValid() {
		return ErrInvalidRoomType
	}
	if p.PriceCents < 0 {
		return ErrInvalidPrice
	}
	if p.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if p.TotalUnits < 0 {
		return ErrInvalidUnits
	}

	r.name = p.Name
	r.roomType = p.RoomType
	r.description = p.Description
	r.priceCents = p.PriceCents
	if p.Currency != "" {
		r.currency = p.Currency
	}
	r.capacity = p.Capacity
	r.totalUnits = p.TotalUnits
	r.amenities = p.Amenities
	r.imageURL = p.ImageURL
	r.floorNumber = p.FloorNumber
	r.sizeSqft = p.SizeSqft
	return nil
}

func (r *Room) SetAvailable(available bool) {
	r.available = available
}

func (r *Room) CanAccommodate(guests int) bool {
	return guests >= 1 && guests <= r.capacity
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) RoomType() Type       { return r.roomType }
func (r *Room) Description() string  { return r.description }
func (r *Room) PriceCents() int64    { return r.priceCents }
func (r *Room) Currency() string     { return r.currency }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) TotalUnits() int      { return r.totalUnits }
func (r *Room) Available() bool      { return r.available }
func (r *Room) Amenities() []string  { return r.amenities }
func (r *Room) ImageURL() string     { return r.imageURL }
func (r *Room) FloorNumber() int     { return r.floorNumber }
func (r *Room) SizeSqft() int        { return r.sizeSqft }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
