// Package memstore хранилище бронирований в памяти для тестов usecase и сервисов
//
// Повторяет поведение PostgreSQL-репозиториев в том, что важно для инварианта:
// занятие координат атомарно (аналог первичного ключа reservation_slots),
// транзакция откатывает свои изменения при ошибке.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	labRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/laboratory"
	reservationRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/reservation"
)

type slotKey struct {
	date     string
	block    int
	subBlock domain.SubBlock
}

func keyOf(s domain.Slot) slotKey {
	return slotKey{date: s.Date.Format(domain.DateFormat), block: s.Block, subBlock: s.SubBlock}
}

type journal struct {
	created  []int64
	claimed  []slotKey
	released map[slotKey]int64
	statuses map[int64]domain.ReservationStatus
}

type journalKey struct{}

// Store хранилище в памяти
type Store struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation
	slots        map[slotKey]int64
	labs         map[int64]*domain.Laboratory

	// Hook вызывается в ListActiveInBlock после чтения, до возврата результата
	// Позволяет тестам воспроизвести гонку двух транзакций
	Hook func()
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		reservations: make(map[int64]*domain.Reservation),
		slots:        make(map[slotKey]int64),
		labs:         make(map[int64]*domain.Laboratory),
	}
}

// AddLaboratory добавляет лабораторию в справочник
func (s *Store) AddLaboratory(name string, active bool) *domain.Laboratory {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	lab := &domain.Laboratory{ID: s.nextID, Name: name, Capacity: 30, Active: active}
	s.labs[lab.ID] = lab
	return lab
}

// Seed кладёт готовое бронирование, занимая координаты, если оно активно
func (s *Store) Seed(r domain.Reservation) *domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r.ID = s.nextID
	r.Date = domain.DateOnly(r.Date)
	s.reservations[r.ID] = &r
	if r.IsActive() {
		for _, slot := range r.Slots() {
			s.slots[keyOf(slot)] = r.ID
		}
	}
	return s.copyOf(&r)
}

// SlotHolder ID бронирования, занимающего координату
func (s *Store) SlotHolder(date time.Time, block int, sb domain.SubBlock) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.slots[keyOf(domain.Slot{Date: domain.DateOnly(date), Block: block, SubBlock: sb})]
	return id, ok
}

// Count количество бронирований с учётом отменённых
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// Do транзакция с откатом изменений при ошибке
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{
		released: make(map[slotKey]int64),
		statuses: make(map[int64]domain.ReservationStatus),
	}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.rollback(j)
		return err
	}
	return nil
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range j.claimed {
		delete(s.slots, k)
	}
	for k, id := range j.released {
		s.slots[k] = id
	}
	for id, st := range j.statuses {
		if r, ok := s.reservations[id]; ok {
			r.Status = st
		}
	}
	for _, id := range j.created {
		delete(s.reservations, id)
	}
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

// Репозиторий бронирований

func (s *Store) ListActiveInBlock(ctx context.Context, date time.Time, block int) ([]*domain.Reservation, error) {
	res, err := s.List(ctx, domain.ReservationsFilter{Date: &date, Block: &block})
	if s.Hook != nil {
		s.Hook()
	}
	return res, err
}

func (s *Store) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	stored := *r
	stored.ID = s.nextID
	stored.Date = domain.DateOnly(r.Date)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.reservations[stored.ID] = &stored

	if j := journalFrom(ctx); j != nil {
		j.created = append(j.created, stored.ID)
	}

	return s.copyOf(&stored), nil
}

func (s *Store) ClaimSlots(ctx context.Context, reservationID int64, slots []domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range slots {
		if holder, ok := s.slots[keyOf(slot)]; ok {
			return fmt.Errorf("%w: ClaimSlots - held by %d", reservationRepo.ErrSlotTaken, holder)
		}
	}

	j := journalFrom(ctx)
	for _, slot := range slots {
		k := keyOf(slot)
		s.slots[k] = reservationID
		if j != nil {
			j.claimed = append(j.claimed, k)
		}
	}
	return nil
}

func (s *Store) ReleaseSlots(ctx context.Context, reservationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := journalFrom(ctx)
	for k, id := range s.slots {
		if id != reservationID {
			continue
		}
		delete(s.slots, k)
		if j != nil {
			j.released[k] = id
		}
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return s.copyOf(r), nil
}

func (s *Store) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if matches(r, filter) {
			out = append(out, s.copyOf(r))
		}
	}

	sortByScope(out, filter.Scope())
	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return time.Time{}, reservationRepo.ErrReservationNotFound
	}

	if j := journalFrom(ctx); j != nil {
		if _, seen := j.statuses[id]; !seen {
			j.statuses[id] = r.Status
		}
	}

	r.Status = status
	r.UpdatedAt = time.Now()
	return r.UpdatedAt, nil
}

// Справочник лабораторий

// Labs представление хранилища как репозитория лабораторий
// GetByID у бронирований и лабораторий конфликтует по имени, поэтому отдельный тип
type Labs struct{ s *Store }

func (s *Store) Labs() *Labs { return &Labs{s: s} }

func (l *Labs) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	lab, ok := l.s.labs[id]
	if !ok {
		return nil, labRepo.ErrLaboratoryNotFound
	}
	cp := *lab
	return &cp, nil
}

func (l *Labs) GetByName(ctx context.Context, name string) (*domain.Laboratory, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	for _, lab := range l.s.labs {
		if strings.EqualFold(lab.Name, name) {
			cp := *lab
			return &cp, nil
		}
	}
	return nil, labRepo.ErrLaboratoryNotFound
}

func (l *Labs) ListActive(ctx context.Context) ([]*domain.Laboratory, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	out := make([]*domain.Laboratory, 0)
	for _, lab := range l.s.labs {
		if lab.Active {
			cp := *lab
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (l *Labs) CountActive(ctx context.Context) (int, error) {
	labs, _ := l.ListActive(ctx)
	return len(labs), nil
}

func (s *Store) copyOf(r *domain.Reservation) *domain.Reservation {
	cp := *r
	if lab, ok := s.labs[r.LaboratoryID]; ok {
		cp.LaboratoryName = lab.Name
	}
	return &cp
}

func matches(r *domain.Reservation, f domain.ReservationsFilter) bool {
	if !f.IncludeCancelled && !r.IsActive() {
		return false
	}
	if f.OwnerID != nil && r.OwnerID != *f.OwnerID {
		return false
	}
	if f.LaboratoryID != nil && r.LaboratoryID != *f.LaboratoryID {
		return false
	}

	switch f.Scope() {
	case domain.ScopeDate:
		if !r.Date.Equal(domain.DateOnly(*f.Date)) {
			return false
		}
		if f.Block != nil && r.Block != *f.Block {
			return false
		}
	case domain.ScopeMonth:
		start, end := f.Month.Bounds()
		if r.Date.Before(start) || !r.Date.Before(end) {
			return false
		}
	}
	return true
}

func sortByScope(rs []*domain.Reservation, scope domain.Scope) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if !a.Date.Equal(b.Date) && scope != domain.ScopeDate {
			if scope == domain.ScopeAll {
				return a.Date.After(b.Date)
			}
			return a.Date.Before(b.Date)
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		if a.SubBlock != b.SubBlock {
			return a.SubBlock < b.SubBlock
		}
		return a.ID < b.ID
	})
}
