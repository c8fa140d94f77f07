package usecase

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound        = errs.New("room not found")
	ErrInvalidRoomInput    = errs.New("invalid room data")
	ErrRoomHasReservations = errs.New("room has reservations and cannot be deleted")
)

type RoomFilter struct {
	RoomType      *string
	MinPriceCents *int64
	MaxPriceCents *int64
}

func (f RoomFilter) IsEmpty() bool {
	return f.RoomType == nil && f.MinPriceCents == nil && f.MaxPriceCents == nil
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// FindByIDForUpdate locks the room row for the duration of tx, serializing
	// concurrent bookings of the same room.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]readmodel.RoomRM, error)
	ListAvailable(ctx context.Context, period reservation.StayPeriod, guests int) ([]readmodel.RoomAvailabilityRM, error)
}

// RoomCache is a best-effort read cache. Implementations must degrade to
// misses on backend failure, never surface errors.
type RoomCache interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*readmodel.RoomRM, bool)
	SetRoom(ctx context.Context, rm *readmodel.RoomRM)
	GetRoomList(ctx context.Context) ([]readmodel.RoomRM, bool)
	SetRoomList(ctx context.Context, rms []readmodel.RoomRM)
	Invalidate(ctx context.Context, id uuid.UUID)
	InvalidateList(ctx context.Context)
}

type RoomInput struct {
	Name        string
	RoomType    string
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

type AvailabilityResult struct {
	Available      bool `json:"available"`
	RemainingUnits int  `json:"remaining_units"`
}

type RoomUseCase interface {
	List(ctx context.Context, filter RoomFilter) ([]readmodel.RoomRM, error)
	GetByID(ctx context.Context, id uuid.UUID) (*readmodel.RoomRM, error)
	ListAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]readmodel.RoomAvailabilityRM, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityResult, error)
	Create(ctx context.Context, input RoomInput) (*readmodel.RoomRM, error)
	Update(ctx context.Context, id uuid.UUID, input RoomInput) (*readmodel.RoomRM, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomUseCaseImpl struct {
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	cache           RoomCache
}

func NewRoomUseCase(roomRepo RoomRepository, reservationRepo ReservationRepository, cache RoomCache) RoomUseCase {
	return &roomUseCaseImpl{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		cache:           cache,
	}
}

func (u *roomUseCaseImpl) List(ctx context.Context, filter RoomFilter) ([]readmodel.RoomRM, error) {
	// Only the unfiltered listing is cached; filtered queries go to the DB.
	if filter.IsEmpty() {
		if cached, ok := u.cache.GetRoomList(ctx); ok {
			return cached, nil
		}
	}

	rms, err := u.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() {
		u.cache.SetRoomList(ctx, rms)
	}
	return rms, nil
}

func (u *roomUseCaseImpl) GetByID(ctx context.Context, id uuid.UUID) (*readmodel.RoomRM, error) {
	if cached, ok := u.cache.GetRoom(ctx, id); ok {
		return cached, nil
	}

	entity, err := u.roomRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	rm := toRoomRM(entity)
	u.cache.SetRoom(ctx, rm)
	return rm, nil
}

func (u *roomUseCaseImpl) ListAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]readmodel.RoomAvailabilityRM, error) {
	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}
	if guests < 1 {
		guests = 1
	}

	return u.roomRepo.ListAvailable(ctx, period, guests)
}

func (u *roomUseCaseImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}

	entity, err := u.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if !entity.Available() {
		return &AvailabilityResult{Available: false, RemainingUnits: 0}, nil
	}

	overlapping, err := u.reservationRepo.CountOverlapping(ctx, nil, roomID, period, nil)
	if err != nil {
		return nil, err
	}

	remaining := entity.TotalUnits() - overlapping
	if remaining < 0 {
		remaining = 0
	}

	return &AvailabilityResult{
		Available:      remaining > 0,
		RemainingUnits: remaining,
	}, nil
}

func (u *roomUseCaseImpl) Create(ctx context.Context, input RoomInput) (*readmodel.RoomRM, error) {
	roomType, err := room.NewType(input.RoomType)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}

	entity, err := room.NewRoom(room.NewRoomParams{
		Name:        input.Name,
		RoomType:    roomType,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		Capacity:    input.Capacity,
		TotalUnits:  input.TotalUnits,
		Amenities:   input.Amenities,
		ImageURL:    input.ImageURL,
		FloorNumber: input.FloorNumber,
		SizeSqft:    input.SizeSqft,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}

	if err := u.roomRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	u.cache.InvalidateList(ctx)
	return toRoomRM(entity), nil
}

func (u *roomUseCaseImpl) Update(ctx context.Context, id uuid.UUID, input RoomInput) (*readmodel.RoomRM, error) {
	entity, err := u.roomRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	roomType, err := room.NewType(input.RoomType)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}

	if err := entity.Update(room.NewRoomParams{
		Name:        input.Name,
		RoomType:    roomType,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		Capacity:    input.Capacity,
		TotalUnits:  input.TotalUnits,
		Amenities:   input.Amenities,
		ImageURL:    input.ImageURL,
		FloorNumber: input.FloorNumber,
		SizeSqft:    input.SizeSqft,
	}); err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomInput)
	}

	if err := u.roomRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx, id)
	u.cache.InvalidateList(ctx)
	return toRoomRM(entity), nil
}

func (u *roomUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.roomRepo.Delete(ctx, id); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrRoomNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrRoomHasReservations
		default:
			return err
		}
	}

	u.cache.Invalidate(ctx, id)
	u.cache.InvalidateList(ctx)
	slog.Info("room deleted", "room_id", id)
	return nil
}

func toRoomRM(r *room.Room) *readmodel.RoomRM {
	return &readmodel.RoomRM{
		ID:          r.ID(),
		Name:        r.Name(),
		RoomType:    r.RoomType().String(),
		Description: r.Description(),
		PriceCents:  r.PriceCents(),
		Currency:    r.Currency(),
		Capacity:    r.Capacity(),
		TotalUnits:  r.TotalUnits(),
		Available:   r.Available(),
		Amenities:   r.Amenities(),
		ImageURL:    r.ImageURL(),
		FloorNumber: r.FloorNumber(),
		SizeSqft:    r.SizeSqft(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}
