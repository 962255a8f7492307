package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Store in-memory хранилище для тестов и локального запуска (storage.driver = "memory")
// Пишущие транзакции сериализуются, при ошибке изменения откатываются.
// Транзакции только для чтения выполняются параллельно друг с другом.
type Store struct {
	mu   sync.RWMutex
	txMu sync.RWMutex

	spaces    map[int64]*domain.Space
	schedules map[int64]*domain.AvailabilitySchedule
	windows   map[int64][]*domain.OpenWindow
	bookings  map[int64]*domain.Booking
	events    map[string]string

	nextBookingID int64
	now           func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		spaces:    make(map[int64]*domain.Space),
		schedules: make(map[int64]*domain.AvailabilitySchedule),
		windows:   make(map[int64][]*domain.OpenWindow),
		bookings:  make(map[int64]*domain.Booking),
		events:    make(map[string]string),
		now:       time.Now,
	}
}

// WithClock подменяет источник времени для created_at/updated_at
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// AddSpace добавляет пространство
func (s *Store) AddSpace(space *domain.Space) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *space
	s.spaces[space.ID] = &cp
}

// AddSchedule добавляет расписание вместе с его периодами
func (s *Store) AddSchedule(schedule *domain.AvailabilitySchedule, windows ...*domain.OpenWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *schedule
	s.schedules[schedule.ID] = &cp
	for _, w := range windows {
		wc := *w
		wc.ScheduleID = schedule.ID
		s.windows[schedule.ID] = append(s.windows[schedule.ID], &wc)
	}
}

// Spaces возвращает репозиторий пространств
func (s *Store) Spaces() *SpaceRepository {
	return &SpaceRepository{store: s}
}

// Calendar возвращает репозиторий расписаний
func (s *Store) Calendar() *CalendarRepository {
	return &CalendarRepository{store: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Events возвращает журнал обработанных событий
func (s *Store) Events() *EventRepository {
	return &EventRepository{store: s}
}

// TxManager возвращает менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type snapshot struct {
	bookings      map[int64]*domain.Booking
	events        map[string]string
	nextBookingID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		bookings:      make(map[int64]*domain.Booking, len(s.bookings)),
		events:        make(map[string]string, len(s.events)),
		nextBookingID: s.nextBookingID,
	}
	for id, b := range s.bookings {
		cp := *b
		snap.bookings[id] = &cp
	}
	for id, t := range s.events {
		snap.events[id] = t
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = snap.bookings
	s.events = snap.events
	s.nextBookingID = snap.nextBookingID
}

type txKey struct{}

type txMode int

const (
	txWrite txMode = iota + 1
	txReadOnly
)

// ErrReadOnlyTransaction возвращается при попытке открыть пишущую транзакцию внутри транзакции только для чтения
var ErrReadOnlyTransaction = errors.New("memory: write transaction inside read-only transaction")

// TxManager транзакции хранилища
// Вложенные вызовы выполняются в уже открытой транзакции
type TxManager struct {
	store *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
// Видит только закоммиченные данные, параллельно с другими читателями
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if mode(ctx) != 0 {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.txMu.RLock()
	defer m.store.txMu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, txReadOnly))
}

// DoLocked выполняет fn в пишущей транзакции
func (m *TxManager) DoLocked(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	switch mode(ctx) {
	case txWrite:
		return fn(ctx)
	case txReadOnly:
		return ErrReadOnlyTransaction
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, txWrite)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func mode(ctx context.Context) txMode {
	v, _ := ctx.Value(txKey{}).(txMode)
	return v
}

func inTx(ctx context.Context) bool {
	return mode(ctx) != 0
}
